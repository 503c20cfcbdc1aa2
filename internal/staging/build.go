package staging

import (
	"github.com/cleared-dev/stmtimport/internal/catalog"
	"github.com/cleared-dev/stmtimport/internal/id"
	"github.com/cleared-dev/stmtimport/internal/importer"
	"github.com/cleared-dev/stmtimport/internal/model"
)

// Build normalizes every row of table under mapping and stages the result in
// a new session. It fails with importer.ErrIncompleteMapping when a required
// role is unset.
func Build(table *model.Table, mapping model.ColumnMapping, cats *catalog.Service) (*Session, error) {
	sid := id.NewSession()
	n, err := importer.NewNormalizer(mapping, table.Headers, cats, sid)
	if err != nil {
		return nil, err
	}
	return NewSession(sid, mapping, table.Rows, n.NormalizeAll(table.Rows))
}
