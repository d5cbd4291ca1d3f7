// Package scrape runs the committee ingestion pipeline: fetch each archived
// committee page, locate roster fragments, parse them into members, and
// record the roles in the registry.
package scrape

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/daniel-butler/conf-roster/pkg/fetcher"
	"github.com/daniel-butler/conf-roster/pkg/htmldoc"
	"github.com/daniel-butler/conf-roster/pkg/locator"
	"github.com/daniel-butler/conf-roster/pkg/namenorm"
	"github.com/daniel-butler/conf-roster/pkg/registry"
	"github.com/daniel-butler/conf-roster/pkg/roster"
)

// Options controls a pipeline run.
type Options struct {
	Venue    string // venue filter; "" or "all" means every venue
	Year     int    // year filter; 0 means every year
	DryRun   bool   // parse and print, write nothing
	Force    bool   // re-scrape conferences that already have data
	Local    bool   // read pages from LocalDir instead of HTTP
	LocalDir string
}

// Pipeline scrapes committee pages into the registry.
type Pipeline struct {
	reg  *registry.Registry
	f    *fetcher.Fetcher
	opts Options
	out  io.Writer
}

// New creates a pipeline writing progress to out.
func New(reg *registry.Registry, f *fetcher.Fetcher, opts Options, out io.Writer) *Pipeline {
	return &Pipeline{reg: reg, f: f, opts: opts, out: out}
}

type section struct {
	url  string
	kind roster.Kind
}

// Run processes every matching conference sequentially. A section that fails
// to fetch or parse is reported and skipped; a registry write failure aborts
// the run.
func (p *Pipeline) Run() error {
	if p.opts.Local {
		if p.opts.LocalDir == "" {
			return fmt.Errorf("local mode requires a local directory")
		}
		if info, err := os.Stat(p.opts.LocalDir); err != nil || !info.IsDir() {
			return fmt.Errorf("local directory %s does not exist", p.opts.LocalDir)
		}
	}

	conferences, err := p.reg.ConferencesToScrape(p.opts.Venue, p.opts.Year)
	if err != nil {
		return fmt.Errorf("listing conferences: %w", err)
	}
	if len(conferences) == 0 {
		fmt.Fprintln(p.out, "No conferences to scrape.")
		return nil
	}

	for _, conf := range conferences {
		if err := p.runConference(&conf); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) runConference(conf *registry.Conference) error {
	fmt.Fprintf(p.out, "== %s %d ==\n", conf.Venue, conf.Year)

	if !p.opts.Force {
		has, err := p.reg.HasCommitteeData(conf.ID)
		if err != nil {
			return fmt.Errorf("checking existing data: %w", err)
		}
		if has {
			fmt.Fprintln(p.out, "  already has committee data, skipping (use -force to re-scrape)")
			return nil
		}
	}

	sections := []section{
		{conf.PCURL, roster.KindPC},
		{conf.OrganizersURL, roster.KindOC},
		{conf.SteeringURL, roster.KindSC},
	}

	for _, s := range sections {
		if s.url == "" {
			continue
		}

		members, err := p.scrapeSection(s.url, s.kind)
		if err != nil {
			fmt.Fprintf(p.out, "  warning: %s %s: %v\n", s.kind, s.url, err)
			continue
		}
		if len(members) == 0 {
			fmt.Fprintf(p.out, "  %s: no members found at %s\n", s.kind, s.url)
			continue
		}

		fmt.Fprintf(p.out, "  %s: %d members\n", s.kind, len(members))

		if p.opts.DryRun {
			for _, m := range members {
				line := "    " + m.Name
				if m.Affiliation != "" {
					line += " (" + m.Affiliation + ")"
				}
				if m.Position != roster.PositionMember {
					line += " [" + m.Position.String() + "]"
				}
				fmt.Fprintln(p.out, line)
			}
			continue
		}

		if err := p.store(conf.ID, members); err != nil {
			return err
		}
	}
	return nil
}

// scrapeSection fetches and parses one committee page into deduplicated,
// name-sorted members.
func (p *Pipeline) scrapeSection(url string, kind roster.Kind) ([]roster.Member, error) {
	var body []byte
	var err error
	if p.opts.Local {
		body, err = p.f.FetchLocal(p.opts.LocalDir, url)
	} else {
		body, err = p.f.Fetch(url)
	}
	if err != nil {
		return nil, err
	}

	doc, err := htmldoc.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var members []roster.Member
	for _, frag := range locator.Fragments(doc, kind) {
		if m := roster.ParseEntry(frag, kind); m != nil {
			members = append(members, *m)
		}
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	// Drop adjacent duplicates whose normalized names agree; pages often list
	// the same member in a summary table and the full roster.
	deduped := members[:0]
	for _, m := range members {
		if len(deduped) > 0 &&
			namenorm.Normalize(deduped[len(deduped)-1].Name) == namenorm.Normalize(m.Name) {
			continue
		}
		deduped = append(deduped, m)
	}
	return deduped, nil
}

func (p *Pipeline) store(conferenceID string, members []roster.Member) error {
	for _, m := range members {
		person, err := p.reg.GetOrCreatePerson(m.Name, namenorm.Normalize(m.Name), m.Affiliation)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", m.Name, err)
		}
		err = p.reg.UpsertRole(conferenceID, person.ID, m.Committee.String(), m.Position.String(), m.RoleTitle)
		if err != nil {
			return fmt.Errorf("storing role for %q: %w", m.Name, err)
		}
	}
	return nil
}
