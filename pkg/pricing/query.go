package pricing

import "llmprice-hq/pricebook/pkg/currency"

// Query describes one rendering of the catalogue.
type Query struct {
	Currency currency.Code
	Field    Field
	Order    Order
	Model    string
}

// DefaultQuery returns the blend-ascending query in display.
func DefaultQuery(display currency.Code) Query {
	return Query{Currency: display, Field: FieldBlend, Order: Ascending}
}

// Run projects records into q.Currency, keeps the rows whose model
// matches q.Model and sorts them. Rejected records are reported whatever
// the model filter.
func (n *Normalizer) Run(records []PriceRecord, q Query) (Projection, error) {
	proj, err := n.Project(records, q.Currency)
	if err != nil {
		return Projection{}, err
	}
	proj.Rows = Filter(proj.Rows, q.Model)
	if err := Sort(proj.Rows, q.Field, q.Order); err != nil {
		return Projection{}, err
	}
	return proj, nil
}
