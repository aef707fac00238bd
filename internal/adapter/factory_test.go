package adapter

import (
	"net/http"
	"testing"

	"github.com/neilv/neilsearch/internal/registry"
)

func TestForCompany(t *testing.T) {
	client := http.DefaultClient

	for _, ats := range []registry.ATS{
		registry.ATSGreenhouse, registry.ATSLever, registry.ATSAshby, registry.ATSCareers,
	} {
		c := registry.Company{Key: "x", Name: "X", ATS: ats, BoardToken: "x", CareersURL: "https://x.test/careers"}
		f, err := ForCompany(c, client)
		if err != nil {
			t.Fatalf("ForCompany(%s): %v", ats, err)
		}
		if f == nil {
			t.Fatalf("ForCompany(%s) returned nil fetcher", ats)
		}
	}

	if _, err := ForCompany(registry.Company{Key: "x", ATS: "workday"}, client); err == nil {
		t.Error("expected error for unsupported ats")
	}
}
