package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"ortm.io/hrportal/hrapi/v1/common"
)

type PointageEndpoint struct {
	transport *Transport
}

func (e *PointageEndpoint) List(ctx context.Context) ([]common.PointageDTO, error) {
	resp, err := e.transport.Get(ctx, "/pointages/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[common.PointageDTO](resp.Data)
}

func (e *PointageEndpoint) Get(ctx context.Context, id string) (*common.PointageDTO, error) {
	resp, err := e.transport.Get(ctx, fmt.Sprintf("/pointages/%s/", id), nil)
	if err != nil {
		return nil, err
	}

	var dto common.PointageDTO
	if err := json.Unmarshal(resp.Data, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (e *PointageEndpoint) Create(ctx context.Context, dto *common.PointageDTO) (*common.PointageDTO, error) {
	resp, err := e.transport.Post(ctx, "/pointages/", dto)
	if err != nil {
		return nil, err
	}

	var created common.PointageDTO
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update PATCHes the record and falls back to PUT when the backend rejects
// the partial verb.
func (e *PointageEndpoint) Update(ctx context.Context, id string, dto *common.PointageDTO) (*common.PointageDTO, error) {
	path := fmt.Sprintf("/pointages/%s/", id)

	resp, err := e.transport.Patch(ctx, path, dto)
	if err != nil {
		if IsKind(err, KindNetwork) {
			return nil, err
		}
		resp, err = e.transport.Put(ctx, path, dto)
		if err != nil {
			return nil, err
		}
	}

	var updated common.PointageDTO
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *PointageEndpoint) Delete(ctx context.Context, id string) error {
	_, err := e.transport.Delete(ctx, fmt.Sprintf("/pointages/%s/", id))
	return err
}

// MonthlyStats fetches the month's aggregate counters.
func (e *PointageEndpoint) MonthlyStats(ctx context.Context, month, year int) (*common.MonthlyStatsDTO, error) {
	query := map[string]string{
		"mois":  strconv.Itoa(month),
		"annee": strconv.Itoa(year),
	}

	resp, err := e.transport.Get(ctx, "/pointages/stats_mensuelles/", query)
	if err != nil {
		return nil, err
	}

	var stats common.MonthlyStatsDTO
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
