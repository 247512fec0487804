package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/winedex/internal/adapters/repository"
	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/config"
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/internal/domain/model"
	"github.com/okian/winedex/internal/domain/query"
	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/internal/validation"
	"github.com/okian/winedex/pkg/logger"
)

const rieslingYAML = `name: Trimbach Riesling
year: 2020
region: Alsace, France
producer: Trimbach
type: White Wine
grape: Riesling
rating: 4
`

const importYAML = `- name: Ridge Monte Bello
  year: 2016
  region: Santa Cruz Mountains, California
  producer: Ridge
  type: Red Wine
  grape: Cabernet Sauvignon
  rating: 5
  experiencePoints: 200
- name: Felton Road Pinot Noir
  year: 2021
  region: Central Otago, New Zealand
  producer: Felton Road
  type: Red Wine
  grape: Pinot Noir
  rating: 4
`

func sampleService() *service.Service {
	svc := service.New(
		service.WithStore(repository.NewMemoryStore()),
		service.WithClassifier(classify.New(classify.WithCurrentYear(2025))),
		service.WithClock(func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }),
		service.WithLogger(logger.Nop()),
		service.WithSeedSampleData(true),
		service.WithSystemMetrics(false),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

// execute runs one command line on a fresh command tree.
func execute(c *CLI, args ...string) (string, error) {
	var out bytes.Buffer
	root := c.Command()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := c.Execute(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCommands(t *testing.T) {
	Convey("Given the CLI over the sample collection", t, func() {
		svc := sampleService()
		defer svc.Stop()
		run := func(args ...string) (string, error) { return execute(New(WithService(svc)), args...) }

		Convey("list prints a table of every wine", func() {
			out, err := run("list")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Château Margaux")
			So(out, ShouldContainSubstring, "Catena Malbec")
			So(out, ShouldContainSubstring, "RARITY")
		})

		Convey("list --json applies search, filter and sort", func() {
			out, err := run("list", "--json", "--sort", "year", "--order", "desc")
			So(err, ShouldBeNil)
			var wines []types.Wine
			So(json.Unmarshal([]byte(out), &wines), ShouldBeNil)
			So(wines, ShouldHaveLength, 6)
			So(wines[0].Year, ShouldEqual, 2022)

			out, err = run("list", "--json", "-q", "mosel", "--category", "grape", "--value", "Riesling")
			So(err, ShouldBeNil)
			So(json.Unmarshal([]byte(out), &wines), ShouldBeNil)
			So(wines, ShouldHaveLength, 1)
			So(wines[0].Producer, ShouldEqual, "Dr. Loosen")
		})

		Convey("list reports an unknown sort field", func() {
			_, err := run("list", "--sort", "vintage")
			So(errors.Is(err, query.ErrUnknownField), ShouldBeTrue)
		})

		Convey("list says so when nothing matches", func() {
			out, err := run("list", "-q", "retsina")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "no wines")
		})

		Convey("card renders the computed classification", func() {
			out, err := run("card", "1")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Château Margaux")
			So(out, ShouldContainSubstring, "Legendary")
			So(out, ShouldContainSubstring, "Full Red")

			_, err = run("card", "99")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = run("card", "first")
			So(err, ShouldNotBeNil)
		})

		Convey("stats summarises the collection", func() {
			out, err := run("stats")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Collection")
			So(out, ShouldContainSubstring, "By rarity")

			out, err = run("stats", "--json")
			So(err, ShouldBeNil)
			var stats model.CollectionStats
			So(json.Unmarshal([]byte(out), &stats), ShouldBeNil)
			So(stats.TotalWines, ShouldEqual, 6)
			So(stats.TotalExperience, ShouldEqual, 660)
		})

		Convey("classify does not store anything", func() {
			path := writeFile(t, "riesling.yaml", rieslingYAML)
			out, err := run("classify", "--json", path)
			So(err, ShouldBeNil)

			var cards []service.Card
			So(json.Unmarshal([]byte(out), &cards), ShouldBeNil)
			So(cards, ShouldHaveLength, 1)
			So(cards[0].Stats.Classification.TypeKey, ShouldEqual, classify.WhiteAromatic)

			wines, err := svc.Export(context.Background())
			So(err, ShouldBeNil)
			So(wines, ShouldHaveLength, 6)
		})

		Convey("export writes YAML that reads back", func() {
			out, err := run("export")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "name: Château Margaux")

			path := filepath.Join(t.TempDir(), "cellar.yaml")
			out, err = run("export", path)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "exported 6 wines")

			f, err := os.Open(path)
			So(err, ShouldBeNil)
			defer f.Close()
			wines, err := decodeWines(f)
			So(err, ShouldBeNil)
			So(wines, ShouldHaveLength, 6)
			So(wines[0].DateAdded.Equal(time.Date(2024, time.March, 1, 18, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})
	})
}

func TestWriteCommands(t *testing.T) {
	Convey("Given the CLI over the sample collection", t, func() {
		svc := sampleService()
		defer svc.Stop()
		run := func(args ...string) (string, error) { return execute(New(WithService(svc)), args...) }

		Convey("import appends wines with fresh ids", func() {
			out, err := run("import", writeFile(t, "import.yaml", importYAML))
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "imported 2 wines, collection now holds 8")

			w, err := svc.Get(context.Background(), 7)
			So(err, ShouldBeNil)
			So(w.Name, ShouldEqual, "Ridge Monte Bello")
			So(w.Rarity, ShouldNotBeEmpty)
		})

		Convey("import --replace swaps the collection", func() {
			out, err := run("import", "--replace", writeFile(t, "import.yaml", importYAML))
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "collection now holds 2")
		})

		Convey("import rejects invalid wines", func() {
			path := writeFile(t, "bad.yaml", "- name: Nameless\n  type: Red Wine\n  rating: 7\n")
			_, err := run("import", path)
			So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
		})

		Convey("import rejects a scalar document", func() {
			_, err := run("import", writeFile(t, "bad.yaml", "just a string\n"))
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})

		Convey("seed adds the sample collection again", func() {
			out, err := run("seed")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "seeded 6 wines, collection now holds 12")
		})

		Convey("reclassify leaves computed rarities alone", func() {
			out, err := run("reclassify")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "reclassified 0 wines")
		})

		Convey("clear needs confirmation", func() {
			_, err := run("clear")
			So(errors.Is(err, ErrNotConfirmed), ShouldBeTrue)

			out, err := run("clear", "--yes")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "collection cleared")

			out, err = run("list")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "no wines")
		})
	})
}

func TestConfiguredStore(t *testing.T) {
	Convey("Given a CLI that opens its own sqlite store", t, func() {
		cfg := config.New()
		cfg.SeedSampleData = false
		dir := t.TempDir()
		run := func(args ...string) (string, error) {
			return execute(New(WithConfig(cfg), WithLogger(logger.Nop())), append(args, "--store", "sqlite", "--data-dir", dir)...)
		}

		Convey("Then writes persist across invocations", func() {
			out, err := run("list")
			So(err, ShouldBeNil)
			So(strings.TrimSpace(out), ShouldEqual, "no wines")

			_, err = run("seed")
			So(err, ShouldBeNil)

			out, err = run("list", "--json")
			So(err, ShouldBeNil)
			var wines []types.Wine
			So(json.Unmarshal([]byte(out), &wines), ShouldBeNil)
			So(wines, ShouldHaveLength, 6)
		})

		Convey("Then an unknown backend is rejected", func() {
			_, err := execute(New(WithConfig(config.New())), "list", "--store", "cassette")
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestDecodeWines(t *testing.T) {
	Convey("Given YAML input", t, func() {
		Convey("A single mapping decodes to one wine", func() {
			wines, err := decodeWines(strings.NewReader(rieslingYAML))
			So(err, ShouldBeNil)
			So(wines, ShouldHaveLength, 1)
			So(wines[0].Type, ShouldEqual, types.WhiteWine)
		})

		Convey("JSON is accepted too", func() {
			wines, err := decodeWines(strings.NewReader(`[{"name":"A","type":"Rosé","rating":3}]`))
			So(err, ShouldBeNil)
			So(wines, ShouldHaveLength, 1)
			So(wines[0].Type, ShouldEqual, types.Rose)
		})

		Convey("Empty input decodes to nothing", func() {
			wines, err := decodeWines(strings.NewReader(""))
			So(err, ShouldBeNil)
			So(wines, ShouldBeEmpty)
		})

		Convey("Malformed input is a decode error", func() {
			_, err := decodeWines(strings.NewReader("- name: [unclosed"))
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})
	})
}
