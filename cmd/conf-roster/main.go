package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/daniel-butler/conf-roster/pkg/fetcher"
	"github.com/daniel-butler/conf-roster/pkg/htmldoc"
	"github.com/daniel-butler/conf-roster/pkg/locator"
	"github.com/daniel-butler/conf-roster/pkg/namenorm"
	"github.com/daniel-butler/conf-roster/pkg/ner"
	"github.com/daniel-butler/conf-roster/pkg/registry"
	"github.com/daniel-butler/conf-roster/pkg/roster"
	"github.com/daniel-butler/conf-roster/pkg/scrape"
	"github.com/daniel-butler/conf-roster/pkg/wayback"
)

var Version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("conf-roster", flag.ContinueOnError)

	dbPath := fs.String("db", defaultDBPath(), "Path to SQLite database")

	if len(args) == 0 {
		printUsage()
		return nil
	}

	cmd := args[0]

	if cmd == "-version" || cmd == "--version" {
		fmt.Println(Version)
		return nil
	}

	switch cmd {
	case "add":
		return cmdAdd(fs, args[1:], dbPath)
	case "scrape":
		return cmdScrape(fs, args[1:], dbPath)
	case "people":
		return cmdPeople(fs, args[1:], dbPath)
	case "show":
		return cmdShow(fs, args[1:], dbPath)
	case "review":
		return cmdReview(fs, args[1:])
	case "resolve":
		return cmdResolve(fs, args[1:])
	case "export":
		return cmdExport(fs, args[1:], dbPath)
	case "import":
		return cmdImport(fs, args[1:], dbPath)
	case "version":
		fmt.Println(Version)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage() {
	fmt.Println(`conf-roster - Build a registry of conference committee members

Commands:
  add <venue> <year>   Register a conference and its archived committee pages
                         -pc <url>     Program committee page
                         -oc <url>     Organizers page
                         -sc <url>     Steering committee page
  scrape               Scrape committee pages into the registry
                         -venue        Venue filter (default: all)
                         -year         Year filter (default: all)
                         -dry-run      Parse and print, write nothing
                         -force        Re-scrape conferences with data
                         -local        Read pages from a local mirror
                         -local-dir    Mirror root directory
  people               Show people ranked by committee-role count
                         -n            Number of results
  show <name>          Show a person and their committee history
  review <url>         Cross-check a committee page with NER
                         -type         Committee kind (PC, OC, SC; default PC)
  resolve <url>        Find the nearest Wayback Machine snapshot
                         -timestamp    Target timestamp (YYYY[MMDD[hhmmss]])
  export               Export all committee roles as CSV
                         -o            Output file (default: stdout)
  import <file>        Import committee roles from a CSV export
  version              Show version
  help                 Show this help

Options:
  -db <path>    SQLite database path (default: ~/.conf-roster/registry.db)`)
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".conf-roster", "registry.db")
}

func ensureDB(path string) (*registry.Registry, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}
	return registry.Open(path)
}

func cmdAdd(fs *flag.FlagSet, args []string, dbPath *string) error {
	pcURL := fs.String("pc", "", "Program committee page URL")
	ocURL := fs.String("oc", "", "Organizers page URL")
	scURL := fs.String("sc", "", "Steering committee page URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: conf-roster add <venue> <year> [-pc url] [-oc url] [-sc url]")
	}
	venue := fs.Arg(0)
	year, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid year %q", fs.Arg(1))
	}

	r, err := ensureDB(*dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	id, err := r.AddConference(&registry.Conference{
		Venue:         venue,
		Year:          year,
		PCURL:         *pcURL,
		OrganizersURL: *ocURL,
		SteeringURL:   *scURL,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s %d (id: %s)\n", venue, year, id)
	return nil
}

func cmdScrape(fs *flag.FlagSet, args []string, dbPath *string) error {
	venue := fs.String("venue", "all", "Venue filter")
	year := fs.Int("year", 0, "Year filter (0 = all)")
	dryRun := fs.Bool("dry-run", false, "Parse and print, write nothing")
	force := fs.Bool("force", false, "Re-scrape conferences that already have data")
	local := fs.Bool("local", false, "Read pages from a local mirror")
	localDir := fs.String("local-dir", "", "Local mirror root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := ensureDB(*dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	p := scrape.New(r, fetcher.New(), scrape.Options{
		Venue:    *venue,
		Year:     *year,
		DryRun:   *dryRun,
		Force:    *force,
		Local:    *local,
		LocalDir: *localDir,
	}, os.Stdout)
	return p.Run()
}

func cmdPeople(fs *flag.FlagSet, args []string, dbPath *string) error {
	limit := fs.Int("n", 20, "Number of results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := ensureDB(*dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	ranked, err := r.MostActivePeople(*limit)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Println("No people yet. Run 'scrape' first.")
		return nil
	}

	fmt.Println("People ranked by committee roles:")
	for i, p := range ranked {
		fmt.Printf("%2d. [%d roles] %s\n", i+1, p.RoleCount, p.Name)
	}
	return nil
}

func cmdShow(fs *flag.FlagSet, args []string, dbPath *string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: conf-roster show <name>")
	}
	name := fs.Arg(0)

	r, err := ensureDB(*dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	// Try the normalized key first, then spelling variants.
	var person *registry.Person
	for _, key := range namenorm.Variants(name) {
		person, err = r.GetPersonByKey(key)
		if err != nil {
			return err
		}
		if person != nil {
			break
		}
	}
	if person == nil {
		return fmt.Errorf("person not found: %s", name)
	}

	fmt.Printf("%s", person.CanonicalName)
	if person.Affiliation != "" {
		fmt.Printf(" (%s)", person.Affiliation)
	}
	fmt.Println()

	roles, err := r.RolesForPerson(person.ID)
	if err != nil {
		return err
	}
	for _, role := range roles {
		line := fmt.Sprintf("  %s %d  %s %s", role.Venue, role.Year, role.Committee, role.Position)
		if role.RoleTitle != "" {
			line += " (" + role.RoleTitle + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// cmdReview compares the pattern-based parse of a committee page against
// prose NER, flagging names each side found that the other missed. Advisory
// only; it never writes to the registry.
func cmdReview(fs *flag.FlagSet, args []string) error {
	kindCode := fs.String("type", "PC", "Committee kind (PC, OC, SC)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: conf-roster review <url> [-type PC]")
	}
	pageURL := fs.Arg(0)

	kind, err := roster.ParseKind(*kindCode)
	if err != nil {
		return err
	}

	body, err := fetcher.New().Fetch(pageURL)
	if err != nil {
		return err
	}

	doc, err := htmldoc.Parse(body)
	if err != nil {
		return err
	}

	var parsed []string
	for _, frag := range locator.Fragments(doc, kind) {
		if m := roster.ParseEntry(frag, kind); m != nil {
			parsed = append(parsed, m.Name)
		}
	}
	nerPeople := ner.ExtractPeople(string(body))

	fmt.Printf("Parser found %d members, NER found %d people\n\n", len(parsed), len(nerPeople))

	for _, p := range parsed {
		best := 0.0
		match := ""
		for _, name := range nerPeople {
			if s := namenorm.Similarity(name, p); s > best {
				best = s
				match = name
			}
		}
		if best >= 0.5 {
			fmt.Printf("  %-40s ~ %s (%.2f)\n", p, match, best)
		} else {
			fmt.Printf("  %-40s no NER match (check for noise)\n", p)
		}
	}
	for _, name := range nerPeople {
		best := 0.0
		for _, p := range parsed {
			if s := namenorm.Similarity(name, p); s > best {
				best = s
			}
		}
		if best < 0.5 {
			fmt.Printf("  NER only (possibly missed): %s\n", name)
		}
	}

	if orgs := ner.ExtractOrganizations(string(body)); len(orgs) > 0 {
		fmt.Printf("\nOrganizations on page (candidate affiliations):\n")
		for _, org := range orgs {
			fmt.Printf("  %s\n", org)
		}
	}
	return nil
}

func cmdResolve(fs *flag.FlagSet, args []string) error {
	timestamp := fs.String("timestamp", "", "Target timestamp (YYYY[MMDD[hhmmss]])")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: conf-roster resolve <url> [-timestamp YYYY]")
	}
	pageURL := fs.Arg(0)

	client := wayback.NewClient("")
	snap, err := client.NearestAt(pageURL, *timestamp)
	if err != nil {
		return err
	}
	if snap == nil || !snap.Available {
		fmt.Printf("No snapshot found for %s\n", pageURL)
		return nil
	}

	fmt.Printf("%s\n  captured %s (status %s)\n", snap.URL, snap.Timestamp, snap.Status)
	return nil
}

var exportHeader = []string{"venue", "year", "committee", "position", "role_title", "name", "affiliation"}

func cmdExport(fs *flag.FlagSet, args []string, dbPath *string) error {
	outPath := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := ensureDB(*dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	roles, err := r.AllRoles()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, role := range roles {
		record := []string{
			role.Venue, strconv.Itoa(role.Year), role.Committee,
			role.Position, role.RoleTitle, role.Name, role.Affiliation,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if *outPath != "" {
		fmt.Printf("Exported %d roles to %s\n", len(roles), *outPath)
	}
	return nil
}

func cmdImport(fs *flag.FlagSet, args []string, dbPath *string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: conf-roster import <file>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("no data rows in %s", fs.Arg(0))
	}
	if len(records[0]) != len(exportHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(exportHeader), len(records[0]))
	}

	r, err := ensureDB(*dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	confIDs := make(map[string]string)
	imported := 0
	for i, rec := range records[1:] {
		venue, committee, position := rec[0], rec[2], rec[3]
		roleTitle, name, affiliation := rec[4], rec[5], rec[6]
		year, err := strconv.Atoi(rec[1])
		if err != nil {
			fmt.Printf("  Warning: row %d has invalid year %q, skipping\n", i+2, rec[1])
			continue
		}

		confKey := fmt.Sprintf("%s/%d", venue, year)
		confID, ok := confIDs[confKey]
		if !ok {
			confID, err = r.AddConference(&registry.Conference{Venue: venue, Year: year})
			if err != nil {
				return err
			}
			confIDs[confKey] = confID
		}

		person, err := r.GetOrCreatePerson(name, namenorm.Normalize(name), affiliation)
		if err != nil {
			return err
		}
		if err := r.UpsertRole(confID, person.ID, committee, position, roleTitle); err != nil {
			return err
		}
		imported++
	}

	fmt.Printf("Imported %d roles.\n", imported)
	return nil
}
