package adapter

import (
	"fmt"
	"net/http"

	"github.com/neilv/neilsearch/internal/model"
	"github.com/neilv/neilsearch/internal/registry"
)

// ForCompany builds the fetcher matching a registry entry's ATS.
func ForCompany(c registry.Company, client *http.Client) (model.JobFetcher, error) {
	switch c.ATS {
	case registry.ATSGreenhouse:
		return NewGreenhouseAdapter(c.BoardToken, c.Name, client), nil
	case registry.ATSLever:
		return NewLeverAdapter(c.BoardToken, c.Name, client), nil
	case registry.ATSAshby:
		return NewAshbyAdapter(c.BoardToken, c.Name, client), nil
	case registry.ATSCareers:
		return NewCareersAdapter(c.CareersURL, c.Name, client), nil
	default:
		return nil, fmt.Errorf("company %s: unsupported ats %q", c.Key, c.ATS)
	}
}
