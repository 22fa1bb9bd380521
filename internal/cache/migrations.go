package cache

const schema = `
CREATE TABLE IF NOT EXISTS responses (
    url        TEXT PRIMARY KEY,
    body       BLOB NOT NULL,
    fetched_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at);
`
