package index

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"

	"github.com/tranvictor/seer/ens"
)

// identityDoc is the flat shape actually indexed. Only the searchable text
// goes in, the full record is cheap to re-resolve from cache.
type identityDoc struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Match is one search hit with its relevance score.
type Match struct {
	Address     string
	Name        string
	Description string
	Score       float64
}

// Store is a persistent full-text index over resolved identities. It
// satisfies ens.Sink so a directory can feed it as resolutions happen.
type Store struct {
	index bleve.Index
}

// DefaultPath is where the index lives on disk, under the user's home.
func DefaultPath() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(usr.HomeDir, ".seer", "identities.bleve"), nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = en.AnalyzerName

	defaultMapping := bleve.NewDocumentMapping()
	defaultMapping.AddFieldMappingsAt("name", textFieldMapping)
	defaultMapping.AddFieldMappingsAt("description", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", defaultMapping)
	indexMapping.DefaultAnalyzer = "en"
	return indexMapping
}

// NewStore opens the index at path, creating it on first use.
func NewStore(path string) (*Store, error) {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, buildIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("opening identity index at %s: %w", path, err)
	}
	return &Store{index: index}, nil
}

// NewMemStore builds an in-memory store, for tests and one-shot runs.
func NewMemStore() (*Store, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Store{index: index}, nil
}

// Put indexes one identity, keyed by lowercase address so re-resolutions
// overwrite instead of duplicating.
func (s *Store) Put(id *ens.Identity) error {
	if id == nil || id.Name == "" {
		return nil
	}
	addr := strings.ToLower(id.Address)
	return s.index.Index(addr, identityDoc{
		Address:     addr,
		Name:        id.Name,
		Description: id.Description,
	})
}

// PutAll indexes a batch of identities in one commit.
func (s *Store) PutAll(ids []*ens.Identity) error {
	batch := s.index.NewBatch()
	for _, id := range ids {
		if id == nil || id.Name == "" {
			continue
		}
		addr := strings.ToLower(id.Address)
		err := batch.Index(addr, identityDoc{
			Address:     addr,
			Name:        id.Name,
			Description: id.Description,
		})
		if err != nil {
			return err
		}
	}
	return s.index.Batch(batch)
}

// Search runs input against the index as a disjunction of an exact phrase
// match and a fuzziness-1 match, best hits first.
func (s *Store) Search(input string) ([]Match, error) {
	matchQuery := bleve.NewMatchPhraseQuery(input)
	fuzzyQuery := bleve.NewFuzzyQuery(input)
	fuzzyQuery.Fuzziness = 1
	query := bleve.NewDisjunctionQuery(matchQuery, fuzzyQuery)
	request := bleve.NewSearchRequest(query)

	searchResults, err := s.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("identity search failed: %w", err)
	}

	results := []Match{}
	for _, hit := range searchResults.Hits {
		doc, err := s.index.Document(hit.ID)
		if err != nil {
			continue
		}
		m := Match{Address: hit.ID, Score: hit.Score}
		for _, field := range doc.Fields {
			switch field.Name() {
			case "name":
				m.Name = string(field.Value())
			case "description":
				m.Description = string(field.Value())
			}
		}
		results = append(results, m)
	}
	return results, nil
}

func (s *Store) Close() error {
	return s.index.Close()
}
