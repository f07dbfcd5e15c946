package market

import (
	"math"

	"github.com/ternarybob/finquant/internal/models"
)

// ComputeStats returns mean, sample standard deviation, max and min of the
// closes. The standard deviation is 0 for fewer than two points.
func ComputeStats(closes []float64) models.SeriesStats {
	stats := models.SeriesStats{Count: len(closes)}
	if len(closes) == 0 {
		return stats
	}

	sum := 0.0
	stats.High = closes[0]
	stats.Low = closes[0]
	for _, c := range closes {
		sum += c
		stats.High = math.Max(stats.High, c)
		stats.Low = math.Min(stats.Low, c)
	}
	stats.Mean = sum / float64(len(closes))

	if len(closes) > 1 {
		sq := 0.0
		for _, c := range closes {
			d := c - stats.Mean
			sq += d * d
		}
		stats.StdDev = math.Sqrt(sq / float64(len(closes)-1))
	}

	return stats
}
