// Package refdata loads the keyword tables behind query parsing and
// candidate matching: profession synonyms, city spellings, diet, marital
// status, religion, caste, education, interest, appearance and career
// keywords.
//
// Tables live in YAML. Default returns the copy compiled into the binary;
// Load reads a replacement file so the tables can change without touching
// matching code.
package refdata
