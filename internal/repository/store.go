package repository

import (
	"github.com/ajharbinger/building-health-pipeline/internal/models"
)

// Dataset is the fully loaded input: the four raw tables plus the active
// rule set.
type Dataset struct {
	Buildings    []models.Building
	Residents    []models.Resident
	Transactions []models.Transaction
	Repairs      []models.Repair
	Rules        []models.ComplianceRule
}

// ResidentsByBuilding groups residents per building id.
func (d *Dataset) ResidentsByBuilding() map[string][]models.Resident {
	return models.IndexResidents(d.Residents)
}

// TransactionsByBuilding groups transactions per building id.
func (d *Dataset) TransactionsByBuilding() map[string][]models.Transaction {
	return models.IndexTransactions(d.Transactions)
}

// RepairsByBuilding groups repairs per building id.
func (d *Dataset) RepairsByBuilding() map[string][]models.Repair {
	return models.IndexRepairs(d.Repairs)
}

// Store loads the input dataset from wherever it lives.
type Store interface {
	Load() (*Dataset, error)
}
