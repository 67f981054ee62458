package dashboard

import (
	"sync"
	"time"

	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/selection"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
)

// Page is the state of one browser session. All fields but seen are
// guarded by mu; seen belongs to the owning Service.
type Page struct {
	mu   sync.Mutex
	seen time.Time

	id       string
	sel      *selection.State
	clauses  []table.Clause
	search   string
	sort     table.SortSpec
	term     string
	sidebar  bool // collapsed
	viewport mapview.Viewport
}

func newPage(id string) *Page {
	return &Page{id: id, sel: selection.New(), viewport: mapview.World()}
}

// ID returns the session id.
func (p *Page) ID() string { return p.id }

// resetTable drops the table state tied to the previous index.
func (p *Page) resetTable() {
	p.clauses = nil
	p.search = ""
	p.sort = table.SortSpec{}
}

func (p *Page) query() table.Query {
	return table.Query{
		Clauses: append([]table.Clause(nil), p.clauses...),
		Search:  p.search,
		Sort:    p.sort,
	}
}
