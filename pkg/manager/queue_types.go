package manager

import (
	"time"

	"github.com/kasuboski/arrqueue/pkg/actions"
	"github.com/kasuboski/arrqueue/pkg/diagnostics"
	"github.com/kasuboski/arrqueue/pkg/issues"
	"github.com/kasuboski/arrqueue/pkg/pagination"
	"github.com/kasuboski/arrqueue/pkg/queue"
	"github.com/kasuboski/arrqueue/pkg/summary"
)

type RowsRequest struct {
	Problematic bool
	Service     queue.Service
	InstanceID  string
	pagination.Params
}

// InstanceStatus is the per instance health shown next to the rows
type InstanceStatus struct {
	InstanceID   string        `json:"instanceId"`
	InstanceName string        `json:"instanceName"`
	Service      queue.Service `json:"service"`
	Records      int           `json:"records"`
	TotalCount   int           `json:"totalCount"`
	Error        string        `json:"error,omitempty"`
}

type RowsResponse struct {
	Rows        []summary.Row    `json:"rows"`
	Meta        pagination.Meta  `json:"meta"`
	Instances   []InstanceStatus `json:"instances"`
	TotalCount  int              `json:"totalCount"`
	RefreshedAt time.Time        `json:"refreshedAt"`
}

// Diagnosis is everything known about why a record is or is not healthy
type Diagnosis struct {
	Record   queue.Record              `json:"record"`
	Lines    []diagnostics.CompactLine `json:"lines"`
	Analysis issues.Analysis           `json:"analysis"`
	Rules    []string                  `json:"rules"`
	Progress *int                      `json:"progress"`
}

type ActionRequest struct {
	Action  actions.Kind     `json:"action" validate:"required,oneof=retry delete manualImport"`
	Keys    []string         `json:"keys" validate:"required,min=1,dive,required"`
	Options *actions.Options `json:"options,omitempty"`
}
