package content

import "context"

// ListSites reports every configured site without touching the network.
func (s *Service) ListSites(ctx context.Context, args ListSitesArgs) (ListSitesResult, error) {
	reg := s.manager.Registry()
	configs := reg.All()
	sites := make([]SiteSummary, 0, len(configs))
	for _, cfg := range configs {
		sites = append(sites, SiteSummary{
			ID:      cfg.ID,
			URL:     cfg.URL,
			Aliases: cfg.Aliases,
			Default: cfg.ID == reg.DefaultID(),
		})
	}
	return ListSitesResult{
		Sites:       sites,
		DefaultSite: reg.DefaultID(),
		Count:       len(sites),
	}, nil
}

// TestSite probes connectivity to one site. Failures are reported in the
// result rather than as an error so the tool never fails outright.
func (s *Service) TestSite(ctx context.Context, args TestSiteArgs) (TestSiteResult, error) {
	res := s.manager.TestSite(ctx, s.resolveSiteID(args.Site))
	return TestSiteResult{
		SiteID:  res.SiteID,
		URL:     res.URL,
		Success: res.Success,
		Error:   res.Error,
	}, nil
}

// DetectSite matches free text against configured hostnames, aliases, and
// ids. No match is a found=false result, not an error.
func (s *Service) DetectSite(ctx context.Context, args DetectSiteArgs) (DetectSiteResult, error) {
	id := s.manager.Registry().DetectSite(args.Text)
	return DetectSiteResult{SiteID: id, Found: id != ""}, nil
}
