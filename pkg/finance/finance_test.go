package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStayDays(t *testing.T) {
	admission := date("2024-01-01")

	t.Run("pasien sudah pulang", func(t *testing.T) {
		discharge := date("2024-01-11")
		assert.Equal(t, 10, StayDays(admission, &discharge, date("2024-06-01")))
	})

	t.Run("masih dirawat pakai waktu sekarang", func(t *testing.T) {
		assert.Equal(t, 3, StayDays(admission, nil, date("2024-01-04")))
	})

	t.Run("hari parsial dibulatkan ke atas", func(t *testing.T) {
		now := date("2024-01-04").Add(6 * time.Hour)
		assert.Equal(t, 4, StayDays(admission, nil, now))
	})

	t.Run("tidak pernah negatif", func(t *testing.T) {
		assert.Equal(t, 0, StayDays(admission, nil, date("2023-12-25")))
		same := admission
		assert.Equal(t, 0, StayDays(admission, &same, date("2024-06-01")))
	})
}

func TestPatientAccountOwing(t *testing.T) {
	// Masuk 2024-01-01, pulang 2024-01-11 (10 hari), tarif 500 + rokok 50,
	// dua pembayaran 2000 dan 1000.
	admission := date("2024-01-01")
	discharge := date("2024-01-11")

	stmt := PatientAccount(admission, &discharge, 500, 50, []float64{2000, 1000}, date("2024-02-01"))

	assert.Equal(t, 10, stmt.Days)
	assert.Equal(t, 5000.0, stmt.TotalTreatmentCost)
	assert.Equal(t, 500.0, stmt.TotalCigaretteCost)
	assert.Equal(t, 5500.0, stmt.GrandTotal)
	assert.Equal(t, 3000.0, stmt.TotalPaid)
	assert.Equal(t, 2500.0, stmt.Balance)
	assert.Equal(t, BalanceOwing, stmt.Status)
}

func TestPatientAccountSettledAndOverpaid(t *testing.T) {
	admission := date("2024-01-01")
	discharge := date("2024-01-11")

	settled := PatientAccount(admission, &discharge, 500, 50, []float64{5500}, date("2024-02-01"))
	assert.Equal(t, 0.0, settled.Balance)
	assert.Equal(t, BalanceSettled, settled.Status)

	overpaid := PatientAccount(admission, &discharge, 500, 50, []float64{6000}, date("2024-02-01"))
	assert.Equal(t, -500.0, overpaid.Balance)
	assert.Equal(t, BalanceOverpaid, overpaid.Status)
}

func TestPatientAccountIsPure(t *testing.T) {
	admission := date("2024-01-01")
	payments := []float64{1000, 250}

	first := PatientAccount(admission, nil, 300, 25, payments, date("2024-01-15"))
	second := PatientAccount(admission, nil, 300, 25, payments, date("2024-01-15"))
	assert.Equal(t, first, second)
}

func TestNetSalary(t *testing.T) {
	assert.Equal(t, 8000.0, NetSalary(8000, 500, 300, 200))
	assert.Equal(t, 0.0, NetSalary(0, 0, 0, 0))
	// Tidak ada batas bawah nol.
	assert.Equal(t, -150.0, NetSalary(100, 0, 200, 50))
}

func TestMonthlyInstallment(t *testing.T) {
	installment, err := MonthlyInstallment(1200, 4)
	require.NoError(t, err)
	assert.Equal(t, 300.0, installment)

	installment, err = MonthlyInstallment(1000, 3)
	require.NoError(t, err)
	assert.Equal(t, 333.33, installment)
	// installment x tenor mendekati jumlah kasbon dalam toleransi pembulatan.
	assert.InDelta(t, 1000, installment*3, 0.01*3)
}

func TestMonthlyInstallmentValidation(t *testing.T) {
	_, err := MonthlyInstallment(1200, 0)
	assert.Error(t, err)

	_, err = MonthlyInstallment(1200, 25)
	assert.Error(t, err)

	_, err = MonthlyInstallment(0, 6)
	assert.Error(t, err)

	_, err = MonthlyInstallment(-50, 6)
	assert.Error(t, err)
}

func TestCigaretteCost(t *testing.T) {
	assert.Equal(t, 50.0, CigaretteCost(CigaretteFullPack))
	assert.Equal(t, 25.0, CigaretteCost(CigaretteHalfPack))
	assert.Equal(t, 0.0, CigaretteCost(CigaretteNone))
	assert.Equal(t, 0.0, CigaretteCost("mystery"))
}

func TestEntryCostStoredOverride(t *testing.T) {
	// Biaya tersimpan menang atas tarif standar tipe-nya.
	assert.Equal(t, 40.0, EntryCost(CigaretteEntry{Type: CigaretteFullPack, Cost: 40}))
	assert.Equal(t, 50.0, EntryCost(CigaretteEntry{Type: CigaretteFullPack}))
	assert.Equal(t, 0.0, EntryCost(CigaretteEntry{Type: CigaretteNone}))
}

func TestComputeCigaretteStats(t *testing.T) {
	entries := []CigaretteEntry{
		{Type: CigaretteFullPack},
		{Type: CigaretteFullPack, Cost: 45},
		{Type: CigaretteHalfPack},
		{Type: CigaretteNone},
	}

	stats := ComputeCigaretteStats(entries)
	assert.Equal(t, 120.0, stats.TotalDailyCost) // 50 + 45 + 25 + 0
	assert.Equal(t, 2, stats.FullPackCount)
	assert.Equal(t, 1, stats.HalfPackCount)
	assert.Equal(t, 2.5, stats.TotalPacksRequested)
	assert.Equal(t, 3, stats.ActiveCount)
	assert.Equal(t, 1, stats.InactiveCount)
}

func TestMergeCigaretteStatsEqualsWholePopulation(t *testing.T) {
	groupA := []CigaretteEntry{
		{Type: CigaretteFullPack},
		{Type: CigaretteHalfPack},
	}
	groupB := []CigaretteEntry{
		{Type: CigaretteHalfPack, Cost: 20},
		{Type: CigaretteNone},
		{Type: CigaretteFullPack},
	}

	merged := MergeCigaretteStats(ComputeCigaretteStats(groupA), ComputeCigaretteStats(groupB))
	whole := ComputeCigaretteStats(append(append([]CigaretteEntry{}, groupA...), groupB...))
	assert.Equal(t, whole, merged)
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 333.33, RoundCurrency(333.3333333))
	assert.Equal(t, 0.13, RoundCurrency(0.125))
	assert.Equal(t, 100.0, RoundCurrency(100))
}
