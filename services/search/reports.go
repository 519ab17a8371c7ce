package searchsvc

import (
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/pkg/errors"

	"github.com/matrusri/standup/core/report"
)

// indexedReport is the shape fed to the full-text index.
type indexedReport struct {
	Username string
	Team     string
	Body     string
	Comment  string
}

// SearchReports runs a full-text query over the given reports and
// returns the matches by decreasing score. The index is built in memory
// from the rows passed in and discarded afterwards: nothing is cached
// between calls, so results always reflect a fresh table load.
func SearchReports(reports []report.Report, queryStr string, limit int) ([]report.Report, error) {
	if limit <= 0 {
		limit = len(reports)
	}

	idx, err := bleve.NewMemOnly(buildReportMapping())
	if err != nil {
		return nil, errors.Wrap(err, "creating report index")
	}
	defer func() { _ = idx.Close() }()

	for i, r := range reports {
		doc := indexedReport{
			Username: r.Username,
			Team:     r.Team,
			Body:     r.Body,
			Comment:  r.Comment,
		}
		if err := idx.Index(strconv.Itoa(i), doc); err != nil {
			return nil, errors.Wrap(err, "indexing report")
		}
	}

	// query string syntax: quoted phrases, boolean operators, fuzzy ~
	query := bleve.NewQueryStringQuery(queryStr)
	search := bleve.NewSearchRequestOptions(query, limit, 0, false)
	res, err := idx.Search(search)
	if err != nil {
		return nil, errors.Wrap(err, "searching reports")
	}

	matches := make([]report.Report, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(reports) {
			continue
		}
		matches = append(matches, reports[i])
	}
	return matches, nil
}

func buildReportMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping.Analyzer = "en" // stemming for report prose

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("Username", textFieldMapping)
	docMapping.AddFieldMappingsAt("Team", textFieldMapping)
	docMapping.AddFieldMappingsAt("Body", bodyFieldMapping)
	docMapping.AddFieldMappingsAt("Comment", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
