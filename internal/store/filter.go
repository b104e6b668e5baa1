package store

import (
	"strings"

	"github.com/cleared-dev/txnapi/internal/model"
)

// Predicate is a WHERE fragment with its bound arguments.
type Predicate struct {
	SQL  string
	Args []any
}

// Empty reports whether the predicate matches everything.
func (p Predicate) Empty() bool { return p.SQL == "" }

// BuildFilter turns a filter into a parameterized predicate. Type values come
// from the closed column mapping and are inlined as literals; status and
// client name are always bound, never spliced into the SQL text.
func BuildFilter(f model.Filter) (Predicate, error) {
	var conds []string
	var args []any

	if len(f.Types) > 0 {
		seen := make(map[model.Type]bool, len(f.Types))
		lits := make([]string, 0, len(f.Types))
		for _, t := range f.Types {
			v, err := encodeType(t)
			if err != nil {
				return Predicate{}, err
			}
			if seen[t] {
				continue
			}
			seen[t] = true
			lits = append(lits, quoteLiteral(v))
		}
		conds = append(conds, "type IN ("+strings.Join(lits, ", ")+")")
	}

	if f.Status != nil {
		v, err := encodeStatus(*f.Status)
		if err != nil {
			return Predicate{}, err
		}
		conds = append(conds, "status = ?")
		args = append(args, v)
	}

	if f.ClientName != "" {
		conds = append(conds, `client_name_folded LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(foldClientName(f.ClientName))+"%")
	}

	return Predicate{SQL: strings.Join(conds, " AND "), Args: args}, nil
}

// foldClientName is the case folding shared by the stored
// client_name_folded column and the filter needle. SQLite's LOWER only folds
// ASCII, so folding happens here instead.
func foldClientName(s string) string {
	return strings.ToLower(s)
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
