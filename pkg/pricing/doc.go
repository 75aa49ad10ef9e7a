// Package pricing normalises catalogue prices into a single display currency
// and orders them for presentation.
//
// Every PriceRecord carries per-one-million-token input and output prices in
// its provider's source currency. A Normalizer converts both prices into the
// requested display currency and derives a blended price:
//
//	blend = input*3 + output*1
//
// The 3:1 weighting models a typical workload that sends three input tokens
// for every output token. It is exposed as Weights so deployments can change
// it, but DefaultWeights keeps the literal 3:1 ratio.
//
// # Usage
//
//	n := pricing.NewNormalizer(currency.DefaultTable(), pricing.DefaultWeights)
//
//	proj, err := n.Project(records, currency.CNY)
//	if err != nil {
//		return err // display currency not supported
//	}
//	for _, rej := range proj.Rejected {
//		log.Warn("row excluded", "model", rej.Record.Model, "error", rej.Err)
//	}
//
//	rows := pricing.Filter(proj.Rows, "gpt")
//	pricing.Sort(rows, pricing.FieldBlend, pricing.Ascending)
//
// # Errors
//
// Rows that cannot be normalised are excluded from a Projection and reported
// in Rejected. The reasons are ErrMalformedRecord (negative or non-finite
// price, missing model or provider) and currency.ErrUnsupportedCurrency
// (source currency not in the table).
//
// Conversion is a scalar multiply, so blending before or after conversion
// yields the same ordering; blending happens after conversion so the sorted
// values match exactly what is displayed.
package pricing
