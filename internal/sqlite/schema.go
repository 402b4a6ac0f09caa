package sqlite

// Schema DDL. The dishes table is rebuilt from dishes.jsonl on every Open.
const schemaSQL = `CREATE TABLE dishes (
    position INTEGER NOT NULL,
    name TEXT NOT NULL UNIQUE
);
CREATE INDEX idx_dishes_position ON dishes (position);`
