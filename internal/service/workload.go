package service

import (
	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
)

// Weighting coefficients of the statutory teaching service: one hour of
// lecture counts as an hour and a half, one hour of practical work as half.
const (
	cmCoeff             = 1.5
	tdCoeff             = 1.0
	tpCoeff             = 0.5
	projetCoeff         = 1.0
	administrationCoeff = 1.0
	externalCoeff       = 0.0
)

func occupancyCoeff(t models.OccupancyType) float64 {
	switch t {
	case models.OccupancyCM:
		return cmCoeff
	case models.OccupancyTD:
		return tdCoeff
	case models.OccupancyTP:
		return tpCoeff
	case models.OccupancyProjet:
		return projetCoeff
	case models.OccupancyAdministration:
		return administrationCoeff
	case models.OccupancyExternal:
		return externalCoeff
	}
	return 0
}

// serviceValue sums the weighted whole hours of the sessions.
func serviceValue(occupancies []models.Occupancy) float64 {
	total := 0.0
	for _, o := range occupancies {
		hours := (o.End - o.Start) / 3600
		total += float64(hours) * occupancyCoeff(o.Type)
	}
	return total
}

// countHours tallies the raw whole hours per session type.
func countHours(occupancies []models.Occupancy) dto.WorkloadBreakdown {
	var b dto.WorkloadBreakdown
	for _, o := range occupancies {
		hours := uint32((o.End - o.Start) / 3600)
		switch o.Type {
		case models.OccupancyCM:
			b.CM += hours
		case models.OccupancyTD:
			b.TD += hours
		case models.OccupancyTP:
			b.TP += hours
		case models.OccupancyProjet:
			b.Projet += hours
		case models.OccupancyAdministration:
			b.Administration += hours
		case models.OccupancyExternal:
			b.External += hours
		}
	}
	b.Total = b.CM + b.TD + b.TP + b.Projet + b.Administration + b.External
	return b
}
