package pgstore

import (
	"testing"

	"jobboard/board_service/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSelect(t *testing.T) {
	q := docstore.Query{
		Type: "job",
		Filter: docstore.And{
			docstore.Eq("status", "status"),
			docstore.Gte("salary.min", "salaryMin"),
		},
		Order:  []docstore.Order{{Field: "featured", Desc: true}},
		Offset: 20,
		Limit:  10,
		Params: docstore.Params{"status": "published", "salaryMin": 30},
	}

	sql, args, err := renderSelect(q)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT d.id, d.doc_type, d.seq, d.data, d.created_at, d.updated_at FROM documents d WHERE d.doc_type = $1 AND "+
			"(COALESCE(jsonb_typeof((d.data #> $2::text[])) = 'string' AND (d.data #> $2::text[]) = $3::jsonb, FALSE) AND "+
			"COALESCE(jsonb_typeof((d.data #> $4::text[])) = 'number' AND (d.data #> $4::text[]) >= $5::jsonb, FALSE)) "+
			"ORDER BY NULLIF((d.data #> $6::text[]), 'null'::jsonb) DESC NULLS LAST, d.seq ASC OFFSET $7 LIMIT $8",
		sql)
	assert.Equal(t, []any{
		"job",
		[]string{"status"}, `"published"`,
		[]string{"salary", "min"}, "30",
		[]string{"featured"},
		20, 10,
	}, args)
}

func TestRenderCountSharesPredicate(t *testing.T) {
	q := docstore.Query{
		Type:   "job",
		Filter: docstore.Match{Field: "company->name", Param: "search"},
		Order:  []docstore.Order{{Field: "featured", Desc: true}},
		Limit:  10,
		Params: docstore.Params{"search": "*50%_off*"},
	}

	sql, args, err := renderCount(q)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT count(*) FROM documents d WHERE d.doc_type = $1 AND "+
			"COALESCE(jsonb_typeof((SELECT (r.data #> $2::text[]) FROM documents r WHERE r.id = d.data ->> $3)) = 'string' AND "+
			"((SELECT (r.data #> $2::text[]) FROM documents r WHERE r.id = d.data ->> $3) #>> '{}') ILIKE $4, FALSE)",
		sql)
	assert.Equal(t, `%50\%\_off%`, args[3])
	assert.NotContains(t, sql, "50%", "user input is bound, never spliced")
}

func TestRenderLeaves(t *testing.T) {
	tests := []struct {
		name   string
		filter docstore.Expr
		params docstore.Params
		want   string
	}{
		{
			name:   "defined",
			filter: docstore.Defined{Field: "expiresAt"},
			want:   "COALESCE(jsonb_typeof((d.data #> $2::text[])) <> 'null', FALSE)",
		},
		{
			name:   "negation",
			filter: docstore.Not{X: docstore.Defined{Field: "expiresAt"}},
			want:   "NOT COALESCE(jsonb_typeof((d.data #> $2::text[])) <> 'null', FALSE)",
		},
		{
			name:   "empty or",
			filter: docstore.Or{},
			want:   "FALSE",
		},
		{
			name:   "in",
			filter: docstore.In{Field: "_id", Param: "ids"},
			params: docstore.Params{"ids": []string{"a"}},
			want:   "COALESCE(jsonb_typeof(to_jsonb(d.id)) = 'string' AND (to_jsonb(d.id) #>> '{}') = ANY($2::text[]), FALSE)",
		},
		{
			name:   "null param never matches",
			filter: docstore.Eq("status", "status"),
			params: docstore.Params{"status": nil},
			want:   "FALSE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := renderCount(docstore.Query{Type: "job", Filter: tt.filter, Params: tt.params})
			require.NoError(t, err)
			assert.Equal(t, "SELECT count(*) FROM documents d WHERE d.doc_type = $1 AND "+tt.want, sql)
		})
	}
}

func TestRenderRejectsInvalidQuery(t *testing.T) {
	_, _, err := renderSelect(docstore.Query{Type: "job", Filter: docstore.Eq("status", "missing")})
	assert.ErrorIs(t, err, docstore.ErrInvalidQuery)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%nurse%", likePattern("*nurse*"))
	assert.Equal(t, `a\\b`, likePattern(`a\b`))
}
