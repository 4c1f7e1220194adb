package digest

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobdigest/internal/model"
)

var sourceCaser = cases.Title(language.AmericanEnglish)

// group holds one company's postings for template rendering.
type group struct {
	Company  string
	Postings []item
}

type item struct {
	Title    string
	Location string
	URL      string
	Source   string
}

var digestTemplate = template.Must(template.New("digest").Parse(`<html>
<body>
<h2>{{.Count}} new job posting{{if ne .Count 1}}s{{end}}</h2>
{{range .Groups}}<h3>{{.Company}}</h3>
<ul>
{{range .Postings}}<li><a href="{{.URL}}">{{.Title}}</a> &mdash; {{.Location}} <em>via {{.Source}}</em></li>
{{end}}</ul>
{{end}}</body>
</html>
`))

// Render formats postings into an HTML digest grouped by company. Companies
// are sorted alphabetically; within a company the fetch order is preserved.
// Rendering an empty set is an error: callers must skip the send instead.
func Render(postings []model.Posting) (string, error) {
	if len(postings) == 0 {
		return "", fmt.Errorf("rendering empty digest")
	}

	byCompany := make(map[string][]item)
	var companies []string
	for _, p := range postings {
		if _, ok := byCompany[p.Company]; !ok {
			companies = append(companies, p.Company)
		}
		byCompany[p.Company] = append(byCompany[p.Company], item{
			Title:    p.Title,
			Location: p.Location,
			URL:      p.URL,
			Source:   sourceCaser.String(p.Source),
		})
	}
	sort.Strings(companies)

	groups := make([]group, 0, len(companies))
	for _, c := range companies {
		groups = append(groups, group{Company: c, Postings: byCompany[c]})
	}

	var buf bytes.Buffer
	err := digestTemplate.Execute(&buf, struct {
		Count  int
		Groups []group
	}{
		Count:  len(postings),
		Groups: groups,
	})
	if err != nil {
		return "", fmt.Errorf("rendering digest: %w", err)
	}

	return buf.String(), nil
}
