package queries

import (
	"sort"
	"strings"

	"printmarket/internal/domain/request"
)

// Pure helpers over already-fetched request slices. Role-scoped views
// are composed from these without re-querying; none of them mutate
// their input.

func FilterByMaterial(requests []*request.PrintRequest, material string) []*request.PrintRequest {
	var result []*request.PrintRequest
	for _, r := range requests {
		if strings.EqualFold(r.Spec().Material, material) {
			result = append(result, r)
		}
	}
	return result
}

func FilterByStatus(requests []*request.PrintRequest, status request.Status) []*request.PrintRequest {
	var result []*request.PrintRequest
	for _, r := range requests {
		if r.Status() == status {
			result = append(result, r)
		}
	}
	return result
}

func SortByCreatedAtDesc(requests []*request.PrintRequest) []*request.PrintRequest {
	result := append([]*request.PrintRequest(nil), requests...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result
}
