package pgstore

// Schema - единственная таблица документов и частичные уникальные индексы
// (совпадают с memstore.DefaultConstraints)
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    id          text        PRIMARY KEY,
    doc_type    text        NOT NULL,
    seq         bigserial   NOT NULL,
    data        jsonb       NOT NULL DEFAULT '{}'::jsonb,
    created_at  timestamptz NOT NULL DEFAULT now(),
    updated_at  timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS documents_type_seq_idx ON documents (doc_type, seq);
CREATE INDEX IF NOT EXISTS documents_data_gin_idx ON documents USING gin (data jsonb_path_ops);

CREATE UNIQUE INDEX IF NOT EXISTS documents_job_slug_uq
    ON documents ((data->>'slug')) WHERE doc_type = 'job';
CREATE UNIQUE INDEX IF NOT EXISTS documents_company_slug_uq
    ON documents ((data->>'slug')) WHERE doc_type = 'company';
CREATE UNIQUE INDEX IF NOT EXISTS documents_category_slug_uq
    ON documents ((data->>'slug')) WHERE doc_type = 'category';
CREATE UNIQUE INDEX IF NOT EXISTS documents_user_email_uq
    ON documents (lower(data->>'email')) WHERE doc_type = 'user';
CREATE UNIQUE INDEX IF NOT EXISTS documents_application_job_email_uq
    ON documents ((data->>'job'), lower(data->>'applicantEmail')) WHERE doc_type = 'application';
CREATE UNIQUE INDEX IF NOT EXISTS documents_follow_user_company_uq
    ON documents ((data->>'user'), (data->>'company')) WHERE doc_type = 'follow';
`
