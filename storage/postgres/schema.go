package postgres

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	gender         TEXT NOT NULL DEFAULT '',
	age            INTEGER NOT NULL DEFAULT 0,
	bio            TEXT NOT NULL DEFAULT '',
	premium        BOOLEAN NOT NULL DEFAULT FALSE,
	likes_received INTEGER NOT NULL DEFAULT 0,
	phone          TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	metadata       JSONB NOT NULL DEFAULT '{}'::jsonb,
	bio_vector     DOUBLE PRECISION[],
	bio_digest     BIGINT NOT NULL DEFAULT 0,
	last_online    TIMESTAMPTZ,
	inserted_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS profiles_gender_age_idx ON profiles (gender, age);

CREATE TABLE IF NOT EXISTS dismissed_recommendations (
	user_id           BIGINT NOT NULL,
	dismissed_user_id BIGINT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, dismissed_user_id)
);
`

const profileColumns = `id, name, gender, age, bio, premium, likes_received, phone, email,
	metadata, bio_vector, bio_digest, inserted_at, updated_at`
