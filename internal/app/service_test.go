package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/winedex/internal/adapters/repository"
	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/internal/validation"
	"github.com/okian/winedex/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func newService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithLogger(logger.Nop()),
		service.WithClassifier(classify.New(classify.WithCurrentYear(2025))),
		service.WithClock(func() time.Time { return fixedNow }),
	}
	return service.New(append(base, opts...)...)
}

func started(opts ...service.Option) *service.Service {
	svc := newService(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := newService()

		Convey("When used before Start", func() {
			_, err := svc.List(context.Background(), service.ListQuery{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("When started twice and stopped twice", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldEqual, true)
			So(svc.GetStats()["store"], ShouldEqual, repository.BackendMemory)
			svc.Stop()
			svc.Stop()

			Convey("Then it reports stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Seed(t *testing.T) {
	Convey("Given a service that seeds sample data", t, func() {
		svc := started(service.WithSeedSampleData(true))
		defer svc.Stop()

		wines, err := svc.Export(context.Background())
		So(err, ShouldBeNil)

		Convey("Then the sample collection is stored with rarities filled", func() {
			So(wines, ShouldHaveLength, len(repository.SampleWines()))
			for _, w := range wines {
				So(w.Rarity.Valid(), ShouldBeTrue)
			}
			So(wines[0].Rarity, ShouldEqual, types.Legendary)
		})
	})

	Convey("Given a non-empty store", t, func() {
		store := repository.NewMemoryStore()
		So(store.Replace(context.Background(), []types.Wine{{ID: 9, Name: "Mine", Type: types.RedWine, Rating: 2}}), ShouldBeNil)
		svc := started(service.WithStore(store), service.WithSeedSampleData(true))
		defer svc.Stop()

		Convey("Then seeding is skipped", func() {
			wines, err := svc.Export(context.Background())
			So(err, ShouldBeNil)
			So(wines, ShouldHaveLength, 1)
		})
	})
}

func TestService_CRUD(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := started()
		defer svc.Stop()

		Convey("When adding wines", func() {
			first, err := svc.Add(ctx, types.Wine{Name: "House Red", Type: types.RedWine, Rating: 2})
			So(err, ShouldBeNil)
			second, err := svc.Add(ctx, types.Wine{
				Name: "Override", Type: types.WhiteWine, Rating: 1, Rarity: types.Epic,
			})
			So(err, ShouldBeNil)

			Convey("Then ids, dates and rarity are assigned", func() {
				So(first.ID, ShouldEqual, 1)
				So(second.ID, ShouldEqual, 2)
				So(first.DateAdded.Equal(fixedNow), ShouldBeTrue)
				So(first.Rarity, ShouldEqual, types.Uncommon)
				So(second.Rarity, ShouldEqual, types.Epic)
			})

			Convey("Then the card shows the computed rarity", func() {
				card, err := svc.Card(ctx, second.ID)
				So(err, ShouldBeNil)
				So(card.Wine.Rarity, ShouldEqual, types.Epic)
				So(card.Stats.Classification.RarityKey, ShouldEqual, classify.RarityCommon)
			})

			Convey("Then an update keeps id and dateAdded", func() {
				upd, err := svc.Update(ctx, first.ID, types.Wine{Name: "House Red 2", Type: types.RedWine, Rating: 3})
				So(err, ShouldBeNil)
				So(upd.ID, ShouldEqual, first.ID)
				So(upd.DateAdded.Equal(fixedNow), ShouldBeTrue)

				got, err := svc.Get(ctx, first.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "House Red 2")
			})

			Convey("Then a delete removes it", func() {
				So(svc.Delete(ctx, first.ID), ShouldBeNil)
				_, err := svc.Get(ctx, first.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(svc.Delete(ctx, first.ID), repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("Then reclassify rewrites the override", func() {
				changed, err := svc.Reclassify(ctx)
				So(err, ShouldBeNil)
				So(changed, ShouldEqual, 1)
				got, _ := svc.Get(ctx, second.ID)
				So(got.Rarity, ShouldEqual, types.Common)
			})
		})

		Convey("When adding an invalid wine", func() {
			_, err := svc.Add(ctx, types.Wine{Type: types.RedWine, Rating: 9})

			Convey("Then a validation error is returned and nothing is stored", func() {
				So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
				wines, _ := svc.Export(ctx)
				So(wines, ShouldBeEmpty)
			})
		})

		Convey("When updating a missing wine", func() {
			_, err := svc.Update(ctx, 42, types.Wine{Name: "x", Type: types.RedWine, Rating: 3})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a seeded service", t, func() {
		ctx := context.Background()
		svc := started(service.WithSeedSampleData(true))
		defer svc.Stop()

		Convey("When listing with the full pipeline", func() {
			wines, err := svc.List(ctx, service.ListQuery{
				Search: "france", Category: "rating", Value: "4", SortField: "year", Order: "desc",
			})
			So(err, ShouldBeNil)
			So(len(wines), ShouldEqual, 2)
			So(wines[0].Year, ShouldBeGreaterThanOrEqualTo, wines[1].Year)
		})

		Convey("When listing with an unknown sort field", func() {
			_, err := svc.List(ctx, service.ListQuery{SortField: "vineyard"})
			So(err, ShouldNotBeNil)
		})

		Convey("When asking for stats, groups and values", func() {
			stats, err := svc.CollectionStats(ctx)
			So(err, ShouldBeNil)
			So(stats.TotalWines, ShouldEqual, len(repository.SampleWines()))

			groups, err := svc.Groups(ctx, "regions", "name")
			So(err, ShouldBeNil)
			So(groups[0].Key, ShouldEqual, string(classify.France))

			_, err = svc.Groups(ctx, "vintage", "")
			So(err, ShouldNotBeNil)

			grapes, err := svc.UniqueValues(ctx, "grape")
			So(err, ShouldBeNil)
			So(grapes, ShouldContain, "Riesling")
		})

		Convey("When importing", func() {
			res, err := svc.Import(ctx, []types.Wine{{ID: 1, Name: "Imported", Type: types.Rose, Rating: 3}}, false)
			So(err, ShouldBeNil)
			So(res.Added, ShouldEqual, 1)
			So(res.Total, ShouldEqual, len(repository.SampleWines())+1)

			all, _ := svc.Export(ctx)
			So(all[len(all)-1].ID, ShouldEqual, len(repository.SampleWines())+1)

			res, err = svc.Import(ctx, []types.Wine{{Name: "Only", Type: types.Rose, Rating: 3}}, true)
			So(err, ShouldBeNil)
			So(res.Total, ShouldEqual, 1)

			_, err = svc.Import(ctx, nil, false)
			So(errors.Is(err, service.ErrEmptyFile), ShouldBeTrue)
		})

		Convey("When clearing", func() {
			So(svc.Clear(ctx), ShouldBeNil)
			wines, _ := svc.Export(ctx)
			So(wines, ShouldBeEmpty)
		})

		Convey("Then the reference tables are exposed", func() {
			So(svc.Reference().Types, ShouldHaveLength, len(classify.TypeKeys))
		})
	})
}

func TestService_StopDuringReads(t *testing.T) {
	Convey("Given a started service over a sqlite store", t, func() {
		ctx := context.Background()
		store, err := repository.OpenSQLite(ctx, filepath.Join(t.TempDir(), "cellar.db"))
		So(err, ShouldBeNil)
		svc := started(service.WithStore(store), service.WithSeedSampleData(true), service.WithSystemMetrics(false))

		Convey("When it stops while readers are running", func() {
			const readers = 8
			errs := make([]error, readers*50)
			var wg sync.WaitGroup
			for r := range readers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range 50 {
						_, errs[r*50+i] = svc.List(ctx, service.ListQuery{SortField: "year"})
					}
				}()
			}
			svc.Stop()
			wg.Wait()

			Convey("Then every read either succeeds or reports the service as not started", func() {
				for _, err := range errs {
					if err != nil {
						So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
					}
				}
			})
		})
	})
}
