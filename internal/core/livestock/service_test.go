// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/herdbook/internal/core/barn"
	"github.com/taibuivan/herdbook/internal/core/livestock"
	"github.com/taibuivan/herdbook/internal/platform/apperr"
	"github.com/taibuivan/herdbook/internal/platform/metrics"
	"github.com/taibuivan/herdbook/pkg/pagination"
	"github.com/taibuivan/herdbook/pkg/pointer"
)

type fixture struct {
	repository *memoryRepository
	service    *livestock.Service
	recorder   *metrics.Recorder
	spy        *occupancySpy
	penA, penB int64
	cow        int64
}

// newFixture builds pen A (capacity 2) holding one cow and an empty pen B
// (capacity 1).
func newFixture(t *testing.T) *fixture {
	t.Helper()

	repository := newMemoryRepository()
	penA := repository.addPen("A", 2)
	penB := repository.addPen("B", 1)
	cow := repository.addAnimal(livestock.Livestock{
		EarTag: "VN-001", Gender: livestock.GenderFemale, Status: livestock.StatusFattening,
		Breed: "Brahman", PenID: pointer.To(penA),
	})

	recorder := metrics.NewRecorder()
	spy := &occupancySpy{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := livestock.NewService(repository, spy, recorder, logger)

	return &fixture{repository: repository, service: service, recorder: recorder, spy: spy, penA: penA, penB: penB, cow: cow}
}

func (f *fixture) fill(penID int64, tags ...string) {
	for _, tag := range tags {
		f.repository.addAnimal(livestock.Livestock{
			EarTag: tag, Gender: livestock.GenderMale, Status: livestock.StatusFattening, PenID: pointer.To(penID),
		})
	}
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()

	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.HTTPStatus
}

// # Registry

/*
TestRegister_Defaults registers a minimal animal and checks the status
default and the occupancy notification.
*/
func TestRegister_Defaults(t *testing.T) {
	f := newFixture(t)

	animal, err := f.service.Register(context.Background(), livestock.RegisterInput{
		EarTag: "VN-002", Gender: livestock.GenderMale, PenID: pointer.To(f.penB),
	})

	require.NoError(t, err)
	assert.NotZero(t, animal.ID)
	assert.Equal(t, livestock.StatusCalf, animal.Status)
	assert.Equal(t, [][]int64{{f.penB}}, f.spy.calls)
}

/*
TestRegister_IgnoresCapacity places an animal into a full pen; only moves are
capacity gated.
*/
func TestRegister_IgnoresCapacity(t *testing.T) {
	f := newFixture(t)
	f.fill(f.penB, "VN-010")

	_, err := f.service.Register(context.Background(), livestock.RegisterInput{
		EarTag: "VN-011", Gender: livestock.GenderMale, PenID: pointer.To(f.penB),
	})

	require.NoError(t, err)
}

/*
TestRegister_Errors covers each rejected registration.
*/
func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input func(f *fixture) livestock.RegisterInput
		code  string
	}{
		{
			name: "duplicate ear tag",
			input: func(f *fixture) livestock.RegisterInput {
				return livestock.RegisterInput{EarTag: "VN-001", Gender: livestock.GenderFemale}
			},
			code: livestock.CodeDuplicateEarTag,
		},
		{
			name: "missing ear tag",
			input: func(f *fixture) livestock.RegisterInput {
				return livestock.RegisterInput{Gender: livestock.GenderFemale}
			},
			code: apperr.CodeValidation,
		},
		{
			name: "unknown gender",
			input: func(f *fixture) livestock.RegisterInput {
				return livestock.RegisterInput{EarTag: "VN-009", Gender: "OTHER"}
			},
			code: apperr.CodeValidation,
		},
		{
			name: "sold is not a starting status",
			input: func(f *fixture) livestock.RegisterInput {
				return livestock.RegisterInput{EarTag: "VN-009", Gender: livestock.GenderMale, Status: livestock.StatusSold}
			},
			code: apperr.CodeValidation,
		},
		{
			name: "unknown pen",
			input: func(f *fixture) livestock.RegisterInput {
				return livestock.RegisterInput{EarTag: "VN-009", Gender: livestock.GenderMale, PenID: pointer.To(int64(999))}
			},
			code: apperr.CodeNotFound,
		},
		{
			name: "unknown mother",
			input: func(f *fixture) livestock.RegisterInput {
				return livestock.RegisterInput{EarTag: "VN-009", Gender: livestock.GenderMale, MotherID: pointer.To(int64(999))}
			},
			code: apperr.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			before := len(f.repository.animals)

			_, err := f.service.Register(context.Background(), tt.input(f))

			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			assert.Len(t, f.repository.animals, before)
			assert.Empty(t, f.spy.calls)
		})
	}
}

/*
TestRegister_ParentsResolve links a calf to existing parents.
*/
func TestRegister_ParentsResolve(t *testing.T) {
	f := newFixture(t)
	bull := f.repository.addAnimal(livestock.Livestock{EarTag: "BULL-1", Gender: livestock.GenderMale, Status: livestock.StatusFattening})

	animal, err := f.service.Register(context.Background(), livestock.RegisterInput{
		EarTag: "VN-003", Gender: livestock.GenderFemale, MotherID: pointer.To(f.cow), FatherID: pointer.To(bull),
	})

	require.NoError(t, err)
	assert.Equal(t, f.cow, *animal.MotherID)
	assert.Equal(t, bull, *animal.FatherID)
	assert.Empty(t, f.spy.calls)
}

/*
TestList_HidesSoldAndFiltersBySuffix checks the manageable herd listing.
*/
func TestList_HidesSoldAndFiltersBySuffix(t *testing.T) {
	f := newFixture(t)
	f.repository.addAnimal(livestock.Livestock{EarTag: "VN-101", Status: livestock.StatusSold})
	f.repository.addAnimal(livestock.Livestock{EarTag: "VN-201", Status: livestock.StatusCalf})

	herd, err := f.service.List(context.Background(), livestock.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, herd, 2)

	herd, err = f.service.List(context.Background(), livestock.ListFilter{TagSuffix: "01"})
	require.NoError(t, err)
	require.Len(t, herd, 2)
	assert.Equal(t, "VN-001", herd[0].EarTag)

	sold, err := f.service.List(context.Background(), livestock.ListFilter{Statuses: []livestock.Status{livestock.StatusSold}})
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, "VN-101", sold[0].EarTag)

	_, err = f.service.List(context.Background(), livestock.ListFilter{Statuses: []livestock.Status{"RETIRED"}})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestUpdateInfo replaces descriptive fields and leaves status and summary
alone.
*/
func TestUpdateInfo(t *testing.T) {
	f := newFixture(t)
	born := day(time.March, 3)

	animal, err := f.service.UpdateInfo(context.Background(), f.cow, livestock.UpdateInput{
		Name: "Daisy", Gender: livestock.GenderFemale, BirthDate: &born, Breed: "Angus",
	})

	require.NoError(t, err)
	assert.Equal(t, "Daisy", animal.Name)
	stored := f.repository.animal(f.cow)
	assert.Equal(t, "Angus", stored.Breed)
	assert.Equal(t, born, *stored.BirthDate)
	assert.Equal(t, livestock.StatusFattening, stored.Status)
	assert.Equal(t, f.penA, *stored.PenID)

	_, err = f.service.UpdateInfo(context.Background(), 999, livestock.UpdateInput{Gender: livestock.GenderMale})
	assert.ErrorIs(t, err, livestock.ErrNotFound)
}

/*
TestDetail returns histories newest first.
*/
func TestDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.RegisterHealth(ctx, f.cow, livestock.HealthInput{Type: livestock.HealthVaccine, EventDate: day(time.January, 1)})
	require.NoError(t, err)
	_, err = f.service.RegisterHealth(ctx, f.cow, livestock.HealthInput{Type: livestock.HealthVaccine, EventDate: day(time.February, 1)})
	require.NoError(t, err)
	_, err = f.service.Estrus(ctx, f.cow, livestock.EstrusInput{EventDate: day(time.January, 15)})
	require.NoError(t, err)

	detail, err := f.service.Detail(ctx, f.cow)

	require.NoError(t, err)
	assert.Equal(t, "VN-001", detail.EarTag)
	require.Len(t, detail.HealthHistory, 2)
	assert.Equal(t, day(time.February, 1), detail.HealthHistory[0].EventDate)
	require.Len(t, detail.BreedingHistory, 1)
	assert.Equal(t, livestock.BreedingEstrus, detail.BreedingHistory[0].Type)
}

// # Housing

/*
TestMove_IntoFullPenConflicts fills pen B and checks a move is rejected
without changing the animal's pen.
*/
func TestMove_IntoFullPenConflicts(t *testing.T) {
	f := newFixture(t)
	f.fill(f.penB, "VN-020")

	err := f.service.Move(context.Background(), f.cow, f.penB)

	require.Error(t, err)
	assert.ErrorIs(t, err, livestock.ErrPenFull)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
	assert.Equal(t, f.penA, *f.repository.animal(f.cow).PenID)
	assert.Empty(t, f.spy.calls)
}

/*
TestMove_SoldAnimalKeepsItsPlace sells the only animal of pen B. It keeps its
pen, so pen B stays full and a move into it is rejected.
*/
func TestMove_SoldAnimalKeepsItsPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	steer := f.repository.addAnimal(livestock.Livestock{
		EarTag: "VN-040", Gender: livestock.GenderMale, Status: livestock.StatusFattening, PenID: pointer.To(f.penB),
	})

	_, err := f.service.RegisterSale(ctx, steer, saleOn(time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, f.penB, *f.repository.animal(steer).PenID)

	err = f.service.Move(ctx, f.cow, f.penB)

	assert.ErrorIs(t, err, livestock.ErrPenFull)
	assert.Equal(t, f.penA, *f.repository.animal(f.cow).PenID)

	herd, err := f.service.ListByPen(ctx, f.penB)
	require.NoError(t, err)
	assert.Len(t, herd, 1)
}

/*
TestMove covers the accepted moves.
*/
func TestMove(t *testing.T) {
	t.Run("into empty pen", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.service.Move(context.Background(), f.cow, f.penB))

		assert.Equal(t, f.penB, *f.repository.animal(f.cow).PenID)
		assert.Equal(t, [][]int64{{f.penA, f.penB}}, f.spy.calls)
	})

	t.Run("same pen is a no-op even when full", func(t *testing.T) {
		f := newFixture(t)
		f.fill(f.penA, "VN-030")

		require.NoError(t, f.service.Move(context.Background(), f.cow, f.penA))

		assert.Equal(t, f.penA, *f.repository.animal(f.cow).PenID)
		assert.Empty(t, f.spy.calls)
	})

	t.Run("unhoused animal", func(t *testing.T) {
		f := newFixture(t)
		stray := f.repository.addAnimal(livestock.Livestock{EarTag: "VN-050", Status: livestock.StatusCalf})

		require.NoError(t, f.service.Move(context.Background(), stray, f.penB))
		assert.Equal(t, [][]int64{{f.penB}}, f.spy.calls)
	})

	t.Run("unknown pen", func(t *testing.T) {
		f := newFixture(t)

		err := f.service.Move(context.Background(), f.cow, 999)
		assert.ErrorIs(t, err, barn.ErrPenNotFound)
	})

	t.Run("unknown animal", func(t *testing.T) {
		f := newFixture(t)

		err := f.service.Move(context.Background(), 999, f.penB)
		assert.ErrorIs(t, err, livestock.ErrNotFound)
	})
}

/*
TestListByPen lists a pen's occupants and rejects an unknown pen.
*/
func TestListByPen(t *testing.T) {
	f := newFixture(t)
	f.fill(f.penA, "VN-060")

	herd, err := f.service.ListByPen(context.Background(), f.penA)
	require.NoError(t, err)
	assert.Len(t, herd, 2)

	_, err = f.service.ListByPen(context.Background(), 999)
	assert.ErrorIs(t, err, barn.ErrPenNotFound)
}

// # Lifecycle

/*
TestRegisterHealth_TreatMakesSick stores the record and updates the
animal and the counters.
*/
func TestRegisterHealth_TreatMakesSick(t *testing.T) {
	f := newFixture(t)

	event, err := f.service.RegisterHealth(context.Background(), f.cow, livestock.HealthInput{
		Type: livestock.HealthTreat, EventDate: day(time.January, 1), DiseaseName: "Mastitis", WithdrawalPeriod: 9,
	})

	require.NoError(t, err)
	assert.NotZero(t, event.ID)

	stored := f.repository.animal(f.cow)
	assert.Equal(t, livestock.StatusSick, stored.Status)
	assert.Equal(t, "Mastitis", stored.LastDiseaseName)
	assert.Equal(t, day(time.January, 10), *stored.WithdrawalDate)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.recorder.EventCounter("health")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.recorder.TransitionCounter("FATTENING", "SICK")))
}

/*
TestRegisterHealth_Errors rejects invalid input and unknown animals without
storing a record.
*/
func TestRegisterHealth_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RegisterHealth(context.Background(), 999, livestock.HealthInput{Type: livestock.HealthTreat, EventDate: day(time.January, 1)})
	assert.ErrorIs(t, err, livestock.ErrNotFound)

	_, err = f.service.RegisterHealth(context.Background(), f.cow, livestock.HealthInput{Type: livestock.HealthTreat, EventDate: day(time.January, 1), WithdrawalPeriod: -1})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.RegisterHealth(context.Background(), f.cow, livestock.HealthInput{Type: "SURGERY", EventDate: day(time.January, 1)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	assert.Empty(t, f.repository.health)
}

/*
TestRecover_OnlySickAnimals leaves other statuses untouched.
*/
func TestRecover_OnlySickAnimals(t *testing.T) {
	f := newFixture(t)

	animal, err := f.service.Recover(context.Background(), f.cow)
	require.NoError(t, err)
	assert.Equal(t, livestock.StatusFattening, animal.Status)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.recorder.EventCounter("recover")))

	_, err = f.service.RegisterHealth(context.Background(), f.cow, livestock.HealthInput{Type: livestock.HealthTreat, EventDate: day(time.January, 1)})
	require.NoError(t, err)

	animal, err = f.service.Recover(context.Background(), f.cow)
	require.NoError(t, err)
	assert.Equal(t, livestock.StatusFattening, animal.Status)
	assert.Equal(t, livestock.StatusFattening, f.repository.animal(f.cow).Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.recorder.EventCounter("recover")))
}

/*
TestBreedingCycle walks an animal from insemination through calving.
*/
func TestBreedingCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.service.Insemination(ctx, f.cow, livestock.InseminationInput{EventDate: day(time.January, 1), SireCode: "ANGUS-77"})
	require.NoError(t, err)
	require.NotNil(t, record.ExpectedDate)
	assert.Equal(t, day(time.October, 13), *record.ExpectedDate)
	assert.Equal(t, day(time.October, 13), *f.repository.animal(f.cow).ExpectedDate)

	_, err = f.service.PregnancyCheck(ctx, f.cow, livestock.PregnancyCheckInput{EventDate: day(time.March, 1), IsPregnant: true})
	require.NoError(t, err)
	assert.Equal(t, livestock.StatusPregnant, f.repository.animal(f.cow).Status)

	herdBefore := len(f.repository.animals)
	calf, err := f.service.Calving(ctx, f.cow, livestock.CalvingInput{
		EventDate: day(time.October, 10), CalfEarTag: "VN-C01", CalfGender: livestock.GenderFemale,
	})
	require.NoError(t, err)

	assert.Len(t, f.repository.animals, herdBefore+1)
	assert.Equal(t, livestock.StatusCalf, calf.Status)
	assert.Equal(t, "VN-C01", calf.EarTag)
	assert.Equal(t, f.penA, *calf.PenID)
	assert.Equal(t, "Brahman", calf.Breed)
	assert.Equal(t, f.cow, *calf.MotherID)
	assert.Equal(t, "Sire: ANGUS-77", calf.Notes)

	mother := f.repository.animal(f.cow)
	assert.Equal(t, livestock.StatusFattening, mother.Status)
	assert.Equal(t, 1, mother.BreedingCount)
	assert.Nil(t, mother.ExpectedDate)
	assert.Nil(t, mother.LastAIDate)

	assert.Equal(t, [][]int64{{f.penA}}, f.spy.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.recorder.EventCounter("calving")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.recorder.TransitionCounter("FATTENING", "PREGNANT")))
}

/*
TestCalving_TemporaryTagAndUnknownSire calves an animal with no insemination
record and no calf tag.
*/
func TestCalving_TemporaryTagAndUnknownSire(t *testing.T) {
	f := newFixture(t)

	calf, err := f.service.Calving(context.Background(), f.cow, livestock.CalvingInput{
		EventDate: day(time.May, 5), CalfGender: livestock.GenderMale,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(calf.EarTag, "TEMP-"))
	assert.Equal(t, "Sire: unknown", calf.Notes)
}

/*
TestCalving_CalfGender accepts every gender the registry does and rejects
anything else.
*/
func TestCalving_CalfGender(t *testing.T) {
	tests := []struct {
		gender  livestock.Gender
		wantErr bool
	}{
		{gender: livestock.GenderMale},
		{gender: livestock.GenderFemale},
		{gender: livestock.GenderCastrated},
		{gender: "", wantErr: true},
		{gender: "HEIFER", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.gender), func(t *testing.T) {
			f := newFixture(t)

			calf, err := f.service.Calving(context.Background(), f.cow, livestock.CalvingInput{
				EventDate: day(time.May, 5), CalfGender: tt.gender,
			})

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.gender, calf.Gender)
		})
	}
}

/*
TestCalving_DuplicateCalfTagRollsBack rejects a taken calf tag and leaves the
mother and the breeding log unchanged.
*/
func TestCalving_DuplicateCalfTagRollsBack(t *testing.T) {
	f := newFixture(t)
	before := f.repository.animal(f.cow)

	_, err := f.service.Calving(context.Background(), f.cow, livestock.CalvingInput{
		EventDate: day(time.May, 5), CalfEarTag: "VN-001", CalfGender: livestock.GenderMale,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, livestock.ErrDuplicateEarTag)
	assert.Equal(t, before, f.repository.animal(f.cow))
	assert.Empty(t, f.repository.breeding)
	assert.Empty(t, f.spy.calls)
}

// # Sale

func saleOn(date time.Month, d int) livestock.SaleInput {
	return livestock.SaleInput{
		SaleDate:     day(date, d),
		Price:        decimal.RequireFromString("1250.50"),
		CustomerName: "Binh Market",
		Weight:       decimal.NewNullDecimal(decimal.RequireFromString("412.5")),
	}
}

/*
TestRegisterSale_SecondSaleConflicts sells an animal twice; the second call
fails and no second sale exists.
*/
func TestRegisterSale_SecondSaleConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale, err := f.service.RegisterSale(ctx, f.cow, saleOn(time.February, 1))
	require.NoError(t, err)
	assert.NotZero(t, sale.ID)
	assert.Equal(t, livestock.StatusSold, f.repository.animal(f.cow).Status)
	assert.Equal(t, [][]int64{{f.penA}}, f.spy.calls)

	_, err = f.service.RegisterSale(ctx, f.cow, saleOn(time.February, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, livestock.ErrAlreadySold)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
	assert.Len(t, f.repository.sales, 1)
	assert.Equal(t, sale.ID, f.repository.sales[f.cow].ID)
}

/*
TestRegisterSale_WithdrawalBoundary checks a sale is refused before the
withdrawal date and accepted from that date on.
*/
func TestRegisterSale_WithdrawalBoundary(t *testing.T) {
	tests := []struct {
		name    string
		saleDay int
		wantErr bool
	}{
		{"before withdrawal", 5, true},
		{"on withdrawal date", 10, false},
		{"after withdrawal", 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.service.RegisterHealth(context.Background(), f.cow, livestock.HealthInput{
				Type: livestock.HealthVaccine, EventDate: day(time.January, 1), WithdrawalPeriod: 9,
			})
			require.NoError(t, err)

			_, err = f.service.RegisterSale(context.Background(), f.cow, saleOn(time.January, tt.saleDay))

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, livestock.ErrNotSafeToSell)
			assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
			assert.Empty(t, f.repository.sales)
			assert.Equal(t, livestock.StatusFattening, f.repository.animal(f.cow).Status)
		})
	}
}

/*
TestRegisterSale_Rejections covers the remaining sale failures.
*/
func TestRegisterSale_Rejections(t *testing.T) {
	t.Run("sick animal", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.RegisterHealth(context.Background(), f.cow, livestock.HealthInput{Type: livestock.HealthTreat, EventDate: day(time.January, 1)})
		require.NoError(t, err)

		_, err = f.service.RegisterSale(context.Background(), f.cow, saleOn(time.March, 1))
		assert.ErrorIs(t, err, livestock.ErrNotSafeToSell)
	})

	t.Run("negative price", func(t *testing.T) {
		f := newFixture(t)
		input := saleOn(time.March, 1)
		input.Price = decimal.NewFromInt(-1)

		_, err := f.service.RegisterSale(context.Background(), f.cow, input)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("unknown animal", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.RegisterSale(context.Background(), 999, saleOn(time.March, 1))
		assert.ErrorIs(t, err, livestock.ErrNotFound)
	})
}

/*
TestSales_Lookup reads a sale back and pages the sold list.
*/
func TestSales_Lookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.GetSale(ctx, f.cow)
	assert.ErrorIs(t, err, livestock.ErrSaleNotFound)

	_, err = f.service.RegisterSale(ctx, f.cow, saleOn(time.April, 1))
	require.NoError(t, err)

	sale, err := f.service.GetSale(ctx, f.cow)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(sale.Price))

	records, total, err := f.service.ListSales(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "VN-001", records[0].EarTag)

	_, err = f.service.GetSale(ctx, 999)
	assert.ErrorIs(t, err, livestock.ErrNotFound)
}

// # Dashboard

/*
TestDashboard counts the manageable herd and lists upcoming deliveries.
*/
func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := day(time.September, 20)

	_, err := f.service.Insemination(ctx, f.cow, livestock.InseminationInput{EventDate: day(time.January, 1)})
	require.NoError(t, err)

	sick := f.repository.addAnimal(livestock.Livestock{EarTag: "VN-070", Status: livestock.StatusFattening})
	_, err = f.service.RegisterHealth(ctx, sick, livestock.HealthInput{Type: livestock.HealthTreat, EventDate: day(time.September, 1)})
	require.NoError(t, err)

	f.repository.addAnimal(livestock.Livestock{EarTag: "VN-080", Status: livestock.StatusSold})

	dashboard, err := f.service.Dashboard(ctx, today, 0)

	require.NoError(t, err)
	assert.Equal(t, livestock.DefaultDueHorizon, dashboard.HorizonDays)
	assert.Equal(t, 2, dashboard.Total)
	assert.Equal(t, 1, dashboard.StatusCounts[livestock.StatusFattening])
	assert.Equal(t, 1, dashboard.StatusCounts[livestock.StatusSick])
	assert.NotContains(t, dashboard.StatusCounts, livestock.StatusSold)
	assert.Equal(t, 1, dashboard.SafeToSell)
	require.Len(t, dashboard.DueSoon, 1)
	assert.Equal(t, f.cow, dashboard.DueSoon[0].ID)

	narrow, err := f.service.Dashboard(ctx, today, 7)
	require.NoError(t, err)
	assert.Empty(t, narrow.DueSoon)
}
