package dataset

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"SP500Insight/internal/checksum"
	"SP500Insight/internal/model"
)

// Source loads the two dataset tables. The metrics engine never performs I/O
// itself; it receives already-loaded tables through this interface.
type Source interface {
	LoadStocks() ([]model.PriceBar, error)
	LoadCompanies() ([]model.CompanyInfo, error)
	Name() string
}

const manifestFile = "manifest.json"

// CacheSource reads previously persisted dataset files from a local cache
// directory, validating each file against the manifest checksum.
type CacheSource struct {
	Dir           string
	StocksFile    string
	CompaniesFile string
}

func NewCacheSource(dir, stocksFile, companiesFile string) *CacheSource {
	return &CacheSource{Dir: dir, StocksFile: stocksFile, CompaniesFile: companiesFile}
}

func (s *CacheSource) Name() string { return "cache" }

func (s *CacheSource) LoadStocks() ([]model.PriceBar, error) {
	data, err := s.readVerified(s.StocksFile)
	if err != nil {
		return nil, err
	}
	bars, dropped, err := ParseStocks(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Printf("[WARN] cache: dropped %d malformed stock rows", dropped)
	}
	return bars, nil
}

func (s *CacheSource) LoadCompanies() ([]model.CompanyInfo, error) {
	data, err := s.readVerified(s.CompaniesFile)
	if err != nil {
		return nil, err
	}
	return ParseCompanies(bytes.NewReader(data))
}

func (s *CacheSource) readVerified(name string) ([]byte, error) {
	path := filepath.Join(s.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cached %s: %w", name, err)
	}

	manifest, err := LoadManifest(filepath.Join(s.Dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("load cache manifest: %w", err)
	}
	if entry, ok := manifest.Files[name]; ok {
		if sum := checksum.Bytes(data); sum != entry.Checksum {
			return nil, fmt.Errorf("cached %s failed checksum validation (have %s, want %s)", name, sum, entry.Checksum)
		}
	}
	return data, nil
}

// FetchSource downloads dataset files from a provider and persists them into
// the cache directory, recording checksums in the manifest.
type FetchSource struct {
	Provider      Provider
	Dir           string
	StocksFile    string
	CompaniesFile string
}

func NewFetchSource(provider Provider, dir, stocksFile, companiesFile string) *FetchSource {
	return &FetchSource{Provider: provider, Dir: dir, StocksFile: stocksFile, CompaniesFile: companiesFile}
}

func (s *FetchSource) Name() string { return "fetch:" + s.Provider.Name() }

func (s *FetchSource) LoadStocks() ([]model.PriceBar, error) {
	data, err := s.fetchAndPersist(s.StocksFile)
	if err != nil {
		return nil, err
	}
	bars, dropped, err := ParseStocks(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Printf("[WARN] fetch: dropped %d malformed stock rows", dropped)
	}
	return bars, nil
}

func (s *FetchSource) LoadCompanies() ([]model.CompanyInfo, error) {
	data, err := s.fetchAndPersist(s.CompaniesFile)
	if err != nil {
		return nil, err
	}
	return ParseCompanies(bytes.NewReader(data))
}

func (s *FetchSource) fetchAndPersist(name string) ([]byte, error) {
	data, err := s.Provider.FetchFile(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("persist %s: %w", name, err)
	}

	manifestPath := filepath.Join(s.Dir, manifestFile)
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("load cache manifest: %w", err)
	}
	manifest.Files[name] = FileEntry{
		Checksum:  checksum.Bytes(data),
		Size:      int64(len(data)),
		FetchedAt: time.Now(),
	}
	if err := SaveManifest(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("save cache manifest: %w", err)
	}
	return data, nil
}

// Store prefers the local cache and falls back to fetching from the provider
// when the cache is missing or fails validation.
type Store struct {
	Cache *CacheSource
	Fetch *FetchSource
}

func NewStore(cache *CacheSource, fetch *FetchSource) *Store {
	return &Store{Cache: cache, Fetch: fetch}
}

func (s *Store) Name() string { return "store" }

func (s *Store) LoadStocks() ([]model.PriceBar, error) {
	bars, err := s.Cache.LoadStocks()
	if err == nil {
		return bars, nil
	}
	if s.Fetch == nil {
		return nil, fmt.Errorf("no cached stocks and no provider configured: %w", err)
	}
	log.Printf("[INFO] stocks cache miss (%v), fetching from %s", err, s.Fetch.Name())
	return s.Fetch.LoadStocks()
}

func (s *Store) LoadCompanies() ([]model.CompanyInfo, error) {
	companies, err := s.Cache.LoadCompanies()
	if err == nil {
		return companies, nil
	}
	if s.Fetch == nil {
		return nil, fmt.Errorf("no cached companies and no provider configured: %w", err)
	}
	log.Printf("[INFO] companies cache miss (%v), fetching from %s", err, s.Fetch.Name())
	return s.Fetch.LoadCompanies()
}
