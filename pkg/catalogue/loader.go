package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/pricing"
)

// FileExtension is the extension of provider files.
const FileExtension = ".json"

// ProviderFile is the on-disk shape of one provider's prices.
type ProviderFile struct {
	Provider string       `json:"provider"`
	Currency string       `json:"currency"`
	Prices   []ModelPrice `json:"prices"`
}

// ModelPrice is one entry of ProviderFile.Prices.
type ModelPrice struct {
	Model               string  `json:"model"`
	OneMInputTokenPrice float64 `json:"oneMInputTokenPrice"`
	OneMOutputPrice     float64 `json:"oneMOutputPrice"`
}

// LoadError names the file that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalogue file %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Records flattens the file into price records.
func (f ProviderFile) Records() []pricing.PriceRecord {
	code := currency.Parse(f.Currency)
	out := make([]pricing.PriceRecord, 0, len(f.Prices))
	for _, p := range f.Prices {
		out = append(out, pricing.PriceRecord{
			Provider:            f.Provider,
			Model:               p.Model,
			OneMInputTokenPrice: p.OneMInputTokenPrice,
			OneMOutputPrice:     p.OneMOutputPrice,
			SourceCurrency:      code,
		})
	}
	return out
}

// ParseFile decodes one provider document. Unknown fields are rejected so
// typos in price keys do not silently become zero prices.
func ParseFile(data []byte) (ProviderFile, error) {
	var f ProviderFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return ProviderFile{}, err
	}
	if strings.TrimSpace(f.Provider) == "" {
		return ProviderFile{}, fmt.Errorf("provider is required")
	}
	if strings.TrimSpace(f.Currency) == "" {
		return ProviderFile{}, fmt.Errorf("currency is required")
	}
	return f, nil
}

// LoadFile reads and parses a single provider file.
func LoadFile(path string) (ProviderFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProviderFile{}, &LoadError{Path: path, Err: err}
	}
	f, err := ParseFile(data)
	if err != nil {
		return ProviderFile{}, &LoadError{Path: path, Err: err}
	}
	return f, nil
}

// ListFiles returns the provider files in dir in lexical order. Hidden
// files and subdirectories are skipped.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue directory %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), FileExtension) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	slices.Sort(files)
	return files, nil
}

// LoadDir loads every provider file in dir and flattens the result.
func LoadDir(dir string) ([]pricing.PriceRecord, []string, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	var records []pricing.PriceRecord
	for _, path := range files {
		f, err := LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, f.Records()...)
	}
	return records, files, nil
}
