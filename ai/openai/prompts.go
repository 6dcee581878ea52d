package openai

import "fmt"

const sentimentPrompt = `Classify the overall sentiment of the profile biography you are given.

Output ONLY a JSON object of the form {"sentiment": "<LABEL>"} where <LABEL> is exactly one of
POSITIVE, NEGATIVE or NEUTRAL. Do not include any preamble or explanation.

Rules:
- POSITIVE: warm, optimistic, enthusiastic or affectionate writing.
- NEGATIVE: bitter, hostile, complaining or dismissive writing.
- NEUTRAL: factual listings, mixed tone, or too little text to judge.

Example:
Input: "I love travelling, cooking for friends and long walks with my dog!"
Output: {"sentiment": "POSITIVE"}

Example:
Input: "Software engineer. Lives in Pune. Vegetarian."
Output: {"sentiment": "NEUTRAL"}`

const interpretationResponseSchema = `{
  "type": "object",
  "properties": {
    "profession":      {"type": "string"},
    "min_income":      {"type": "integer", "description": "annual income in rupees"},
    "location":        {"type": "string"},
    "min_age":         {"type": "integer"},
    "max_age":         {"type": "integer"},
    "marital_status":  {"type": "string"},
    "min_height":      {"type": "string", "description": "e.g. 5'6\""},
    "max_height":      {"type": "string"},
    "smoking":         {"type": "string", "enum": ["Yes", "No", ""]},
    "drinking":        {"type": "string", "enum": ["Yes", "No", ""]},
    "diet":            {"type": "string"},
    "religion":        {"type": "string"},
    "caste":           {"type": "string"},
    "gothra":          {"type": "string"},
    "education":       {"type": "string"},
    "family_values":   {"type": "string"},
    "appearance":      {"type": "array", "items": {"type": "string"}},
    "interests":       {"type": "array", "items": {"type": "string"}},
    "use_my_location": {"type": "boolean"}
  },
  "additionalProperties": false
}`

const interpretationPromptTemplate = `You turn a matrimonial partner search written in plain language into search filters.

Output ONLY valid JSON which complies with the schema below. Omit every field the search does
not mention. Do not include any preamble or explanation.

%s

Rules:
- Ages are whole years. "under 30" means max_age 29; "above 25" means min_age 26.
- Income is annual and in rupees: "10 LPA" or "10 lakhs" is 1000000, "1 crore" is 10000000.
- Heights keep the user's notation (5'8", 170 cm).
- smoking and drinking are "No" when the user asks for a non-smoker or non-drinker.
- Set use_my_location to true for phrases like "near me" or "nearby".
- Appearance is physical description words (fair, tall, slim). Interests are hobbies.

Example:
Input: "software engineer girl in hyderabad 24-28 non smoker who likes trekking"
Output:
{"profession":"Software Engineer","location":"Hyderabad","min_age":24,"max_age":28,"smoking":"No","interests":["trekking"]}`

func buildInterpretationPrompt() string {
	return fmt.Sprintf(interpretationPromptTemplate, interpretationResponseSchema)
}
