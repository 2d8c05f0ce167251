package seeder

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"Sistem-Administrasi-Rehabilitasi/models"
	"Sistem-Administrasi-Rehabilitasi/pkg/finance"
	"Sistem-Administrasi-Rehabilitasi/repository"
)

// SeedDemoData menanam pasien dan staf contoh. Jatah rokok selalu
// eksplisit; entitas tanpa jatah memakai "none", tidak pernah diundi.
func SeedDemoData(patientRepo repository.PatientRepository, staffRepo repository.StaffRepository) {
	log.Println("Memulai seeding data demo...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existingPatients, err := patientRepo.GetAllPatients(ctx, bson.M{})
	if err != nil {
		log.Printf("Gagal memeriksa pasien: %v", err)
		return
	}
	if len(existingPatients) == 0 {
		patients := []models.Patient{
			{
				Name:               "Ahmet Oz",
				PatientType:        "inpatient",
				AdmissionDate:      time.Now().AddDate(0, 0, -10),
				DailyCost:          500,
				DailyCigaretteType: finance.CigaretteFullPack,
				DailyCigaretteCost: finance.CigaretteCost(finance.CigaretteFullPack),
				Status:             models.PatientStatusActive,
			},
			{
				Name:               "Zeynep Arslan",
				PatientType:        "inpatient",
				AdmissionDate:      time.Now().AddDate(0, 0, -25),
				DailyCost:          500,
				DailyCigaretteType: finance.CigaretteHalfPack,
				DailyCigaretteCost: finance.CigaretteCost(finance.CigaretteHalfPack),
				Status:             models.PatientStatusActive,
			},
			{
				Name:               "Mustafa Sahin",
				PatientType:        "outpatient",
				AdmissionDate:      time.Now().AddDate(0, -2, 0),
				DailyCost:          350,
				DailyCigaretteType: finance.CigaretteNone,
				DailyCigaretteCost: 0,
				Status:             models.PatientStatusActive,
			},
		}
		for i := range patients {
			if _, err := patientRepo.CreatePatient(ctx, &patients[i]); err != nil {
				log.Printf("Gagal menambahkan pasien %s: %v", patients[i].Name, err)
				continue
			}
			log.Printf("Pasien %s berhasil ditambahkan.", patients[i].Name)
		}
	} else {
		log.Println("Data pasien sudah ada, seeding pasien dilewati.")
	}

	existingStaff, err := staffRepo.GetAllStaff(ctx, bson.M{})
	if err != nil {
		log.Printf("Gagal memeriksa staf: %v", err)
		return
	}
	if len(existingStaff) == 0 {
		staffList := []models.Staff{
			{
				Name:               "Hasan Yildiz",
				Position:           "Perawat Jaga",
				MonthlySalary:      8000,
				DailyCigaretteType: finance.CigaretteHalfPack,
				DailyCigaretteCost: finance.CigaretteCost(finance.CigaretteHalfPack),
				IsActive:           true,
			},
			{
				Name:               "Emine Kurt",
				Position:           "Juru Masak",
				MonthlySalary:      6500,
				DailyCigaretteType: finance.CigaretteNone,
				DailyCigaretteCost: 0,
				IsActive:           true,
			},
		}
		for i := range staffList {
			if _, err := staffRepo.CreateStaff(ctx, &staffList[i]); err != nil {
				log.Printf("Gagal menambahkan staf %s: %v", staffList[i].Name, err)
				continue
			}
			log.Printf("Staf %s berhasil ditambahkan.", staffList[i].Name)
		}
	} else {
		log.Println("Data staf sudah ada, seeding staf dilewati.")
	}

	log.Println("Seeding data demo selesai.")
}
