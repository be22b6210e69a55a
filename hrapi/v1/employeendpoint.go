package v1

import (
	"context"
	"encoding/json"
	"fmt"

	"ortm.io/hrportal/hrapi/v1/common"
)

type EmployeEndpoint struct {
	transport *Transport
}

func (e *EmployeEndpoint) List(ctx context.Context) ([]common.EmployeDTO, error) {
	resp, err := e.transport.Get(ctx, "/employes/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[common.EmployeDTO](resp.Data)
}

func (e *EmployeEndpoint) Get(ctx context.Context, cin string) (*common.EmployeDTO, error) {
	resp, err := e.transport.Get(ctx, fmt.Sprintf("/employes/%s/", cin), nil)
	if err != nil {
		return nil, err
	}

	var dto common.EmployeDTO
	if err := json.Unmarshal(resp.Data, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (e *EmployeEndpoint) Create(ctx context.Context, dto *common.EmployeDTO) (*common.EmployeDTO, error) {
	resp, err := e.transport.Post(ctx, "/employes/", dto)
	if err != nil {
		return nil, err
	}

	var created common.EmployeDTO
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *EmployeEndpoint) Update(ctx context.Context, cin string, dto *common.EmployeDTO) (*common.EmployeDTO, error) {
	path := fmt.Sprintf("/employes/%s/", cin)

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

	var updated common.EmployeDTO
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *EmployeEndpoint) Delete(ctx context.Context, cin string) error {
	_, err := e.transport.Delete(ctx, fmt.Sprintf("/employes/%s/", cin))
	return err
}

func (e *EmployeEndpoint) Stats(ctx context.Context) (*common.EmployeStatsDTO, error) {
	resp, err := e.transport.Get(ctx, "/employes/stats/", nil)
	if err != nil {
		return nil, err
	}

	var stats common.EmployeStatsDTO
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
