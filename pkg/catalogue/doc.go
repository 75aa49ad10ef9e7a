// Package catalogue loads per-provider price files from a directory and
// keeps the current snapshot available to readers while files change.
//
// Each file holds one provider:
//
//	{
//	  "provider": "openai",
//	  "currency": "USD",
//	  "prices": [
//	    {"model": "gpt-4o", "oneMInputTokenPrice": 2.5, "oneMOutputPrice": 10}
//	  ]
//	}
//
// Files are read in lexical filename order and flattened into
// pricing.PriceRecord values, file by file and entry by entry. The loader
// does not check currencies or prices; that is the normaliser's job, so a
// single bad row is reported instead of failing the whole catalogue.
//
// A Store holds the latest successfully loaded Snapshot. A Watcher reloads
// the store when *.json files in the directory change.
package catalogue
