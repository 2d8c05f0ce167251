package finance

import (
	"fmt"
	"math"
	"time"
)

// Tipe jatah rokok harian yang dikenal untuk pasien, staf, dan alumni.
const (
	CigaretteNone     = "none"
	CigaretteHalfPack = "half_pack"
	CigaretteFullPack = "full_pack"
)

// Tarif harian jatah rokok per tipe.
const (
	halfPackDailyCost = 25.0
	fullPackDailyCost = 50.0
)

// Status saldo rekening pasien.
const (
	BalanceOwing    = "owing"
	BalanceSettled  = "settled"
	BalanceOverpaid = "overpaid"
)

// CigaretteCost mengembalikan biaya harian untuk sebuah tipe jatah rokok.
// Tipe yang tidak dikenal dihitung 0, sama seperti "none".
func CigaretteCost(cigaretteType string) float64 {
	switch cigaretteType {
	case CigaretteFullPack:
		return fullPackDailyCost
	case CigaretteHalfPack:
		return halfPackDailyCost
	default:
		return 0
	}
}

// RoundCurrency membulatkan nilai uang ke satuan mata uang terkecil
// (2 desimal, half-up).
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// StayDays menghitung lama rawat dalam hari penuh (dibulatkan ke atas).
// Tanggal pulang dipakai bila sudah ada, kalau belum dipakai waktu
// sekarang. Hasil tidak pernah negatif.
func StayDays(admission time.Time, discharge *time.Time, now time.Time) int {
	end := now
	if discharge != nil {
		end = *discharge
	}
	elapsed := end.Sub(admission)
	if elapsed <= 0 {
		return 0
	}
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// AccountStatement adalah rincian rekening satu pasien.
type AccountStatement struct {
	Days               int     `json:"days"`
	TotalTreatmentCost float64 `json:"total_treatment_cost"`
	TotalCigaretteCost float64 `json:"total_cigarette_cost"`
	GrandTotal         float64 `json:"grand_total"`
	TotalPaid          float64 `json:"total_paid"`
	Balance            float64 `json:"balance"`
	Status             string  `json:"status"`
}

// PatientAccount menghitung rekening pasien dari data mentah. Fungsi ini
// murni: total_paid dihitung ulang dari daftar pembayaran, bukan dari
// counter tersimpan.
//
// Konvensi tanda saldo: positif = pasien masih berhutang, nol = lunas,
// negatif = kelebihan bayar. Downstream bercabang tepat di batas nol,
// jadi konvensi ini tidak boleh diubah.
func PatientAccount(admission time.Time, discharge *time.Time, dailyCost, dailyCigaretteCost float64, paymentAmounts []float64, now time.Time) AccountStatement {
	days := StayDays(admission, discharge, now)

	treatment := float64(days) * dailyCost
	cigarettes := float64(days) * dailyCigaretteCost
	grandTotal := treatment + cigarettes

	var paid float64
	for _, amount := range paymentAmounts {
		paid += amount
	}

	balance := grandTotal - paid
	status := BalanceSettled
	switch {
	case balance > 0:
		status = BalanceOwing
	case balance < 0:
		status = BalanceOverpaid
	}

	return AccountStatement{
		Days:               days,
		TotalTreatmentCost: treatment,
		TotalCigaretteCost: cigarettes,
		GrandTotal:         grandTotal,
		TotalPaid:          paid,
		Balance:            balance,
		Status:             status,
	}
}

// NetSalary menghitung gaji bersih satu periode payroll.
// Tidak ada pembatasan di nol: input patologis boleh menghasilkan gaji
// bersih negatif dan itu dikembalikan apa adanya.
func NetSalary(baseSalary, bonuses, advances, deductions float64) float64 {
	return baseSalary + bonuses - advances - deductions
}

// MinRepaymentMonths dan MaxRepaymentMonths membatasi tenor cicilan kasbon.
const (
	MinRepaymentMonths = 1
	MaxRepaymentMonths = 24
)

// MonthlyInstallment menghitung potongan bulanan sebuah kasbon,
// dibulatkan ke satuan mata uang terkecil.
func MonthlyInstallment(amount float64, repaymentMonths int) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("jumlah kasbon harus lebih besar dari 0")
	}
	if repaymentMonths < MinRepaymentMonths || repaymentMonths > MaxRepaymentMonths {
		return 0, fmt.Errorf("tenor cicilan harus antara %d sampai %d bulan", MinRepaymentMonths, MaxRepaymentMonths)
	}
	return RoundCurrency(amount / float64(repaymentMonths)), nil
}

// CigaretteEntry adalah proyeksi minimal satu entitas (pasien, staf, atau
// alumni) untuk statistik jatah rokok.
type CigaretteEntry struct {
	Type string
	// Cost adalah biaya harian tersimpan pada entitas. Nilai positif
	// dipakai sebagai override per-entitas; nol berarti pakai tarif
	// standar tipe-nya.
	Cost float64
}

// EntryCost mengembalikan biaya harian efektif sebuah entri.
func EntryCost(e CigaretteEntry) float64 {
	if e.Cost > 0 {
		return e.Cost
	}
	return CigaretteCost(e.Type)
}

// CigaretteStats adalah agregat jatah rokok atas sekumpulan entitas.
type CigaretteStats struct {
	TotalDailyCost      float64 `json:"total_daily_cost"`
	FullPackCount       int     `json:"full_pack_count"`
	HalfPackCount       int     `json:"half_pack_count"`
	TotalPacksRequested float64 `json:"total_packs_requested"`
	ActiveCount         int     `json:"active_count"`
	InactiveCount       int     `json:"inactive_count"`
}

// ComputeCigaretteStats menghitung agregat atas satu kelompok entitas.
// Rumus yang sama dipakai untuk kelompok mana pun, sehingga grand total
// selalu sama dengan jumlah total per kelompok.
func ComputeCigaretteStats(entries []CigaretteEntry) CigaretteStats {
	var stats CigaretteStats
	for _, e := range entries {
		stats.TotalDailyCost += EntryCost(e)
		switch e.Type {
		case CigaretteFullPack:
			stats.FullPackCount++
			stats.ActiveCount++
		case CigaretteHalfPack:
			stats.HalfPackCount++
			stats.ActiveCount++
		default:
			stats.InactiveCount++
		}
	}
	stats.TotalPacksRequested = float64(stats.FullPackCount) + float64(stats.HalfPackCount)*0.5
	return stats
}

// MergeCigaretteStats menjumlahkan agregat beberapa kelompok menjadi
// grand total.
func MergeCigaretteStats(groups ...CigaretteStats) CigaretteStats {
	var total CigaretteStats
	for _, g := range groups {
		total.TotalDailyCost += g.TotalDailyCost
		total.FullPackCount += g.FullPackCount
		total.HalfPackCount += g.HalfPackCount
		total.ActiveCount += g.ActiveCount
		total.InactiveCount += g.InactiveCount
	}
	total.TotalPacksRequested = float64(total.FullPackCount) + float64(total.HalfPackCount)*0.5
	return total
}
