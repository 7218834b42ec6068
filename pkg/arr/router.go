package arr

import (
	"context"
	"errors"
	"fmt"

	"github.com/kasuboski/arrqueue/pkg/actions"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

var ErrUnknownInstance = errors.New("unknown instance")

type route struct {
	instanceID string
	service    queue.Service
}

// Router sends action requests to the client of the owning instance
type Router struct {
	clients map[route]Client
	order   []Client
}

func NewRouter(clients ...Client) *Router {
	r := &Router{
		clients: make(map[route]Client, len(clients)),
		order:   make([]Client, 0, len(clients)),
	}

	for _, c := range clients {
		r.clients[route{c.Instance().ID, c.Service()}] = c
		r.order = append(r.order, c)
	}

	return r
}

// Clients returns every client in registration order
func (r *Router) Clients() []Client {
	return r.order
}

func (r *Router) client(instanceID string, service queue.Service) (Client, error) {
	c, ok := r.clients[route{instanceID, service}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownInstance, service, instanceID)
	}
	return c, nil
}

func (r *Router) Single(ctx context.Context, req actions.SingleRequest) error {
	c, err := r.client(req.InstanceID, req.Service)
	if err != nil {
		return err
	}

	switch req.Action {
	case actions.KindRetry:
		return c.Retry(ctx, req.ItemID)
	case actions.KindDelete:
		err := c.Delete(ctx, req.Options, req.ItemID)
		if err != nil {
			return err
		}
		if req.Search != nil {
			return c.Search(ctx, *req.Search)
		}
		return nil
	case actions.KindManualImport:
		return c.ManualImport(ctx, req.DownloadID)
	}

	return fmt.Errorf("%w: %q", actions.ErrUnknownAction, req.Action)
}

func (r *Router) Bulk(ctx context.Context, req actions.BulkRequest) error {
	c, err := r.client(req.InstanceID, req.Service)
	if err != nil {
		return err
	}

	switch req.Action {
	case actions.KindRetry:
		return c.Retry(ctx, req.IDs...)
	case actions.KindDelete:
		return c.Delete(ctx, req.Options, req.IDs...)
	}

	return fmt.Errorf("%w: %q has no bulk form", actions.ErrUnknownAction, req.Action)
}
