package v1

import (
	"context"
	"encoding/json"
	"fmt"

	"ortm.io/hrportal/hrapi/v1/common"
)

type DepartementEndpoint struct {
	transport *Transport
}

func (e *DepartementEndpoint) List(ctx context.Context) ([]common.DepartementDTO, error) {
	resp, err := e.transport.Get(ctx, "/departements/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[common.DepartementDTO](resp.Data)
}

func (e *DepartementEndpoint) Get(ctx context.Context, id string) (*common.DepartementDTO, error) {
	resp, err := e.transport.Get(ctx, fmt.Sprintf("/departements/%s/", id), nil)
	if err != nil {
		return nil, err
	}

	var dto common.DepartementDTO
	if err := json.Unmarshal(resp.Data, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (e *DepartementEndpoint) Create(ctx context.Context, dto *common.DepartementDTO) (*common.DepartementDTO, error) {
	resp, err := e.transport.Post(ctx, "/departements/", dto)
	if err != nil {
		return nil, err
	}

	var created common.DepartementDTO
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *DepartementEndpoint) Update(ctx context.Context, id string, dto *common.DepartementDTO) (*common.DepartementDTO, error) {
	path := fmt.Sprintf("/departements/%s/", id)

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

	var updated common.DepartementDTO
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *DepartementEndpoint) Delete(ctx context.Context, id string) error {
	_, err := e.transport.Delete(ctx, fmt.Sprintf("/departements/%s/", id))
	return err
}
