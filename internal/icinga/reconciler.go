package icinga

import (
	"context"
	"net/http"

	"github.com/alexisbeaulieu97/directorctl/internal/director"
	"github.com/alexisbeaulieu97/directorctl/internal/logger"
	dcerrors "github.com/alexisbeaulieu97/directorctl/pkg/errors"
)

// Result is the reportable outcome of a reconciliation. This shape is the
// only contract the CLI/reporting layer depends on.
type Result struct {
	Changed    bool         `json:"changed"`
	ObjectName string       `json:"object_name"`
	Data       DesiredState `json:"data"`
	Diff       Diff         `json:"diff"`
}

// Reconciler drives a single object towards its declared intent with the
// minimum number of API calls. It holds no mutable state between calls;
// every invocation is a pure function of (definition, current remote state)
// plus at most one mutating call.
type Reconciler struct {
	locator   *Locator
	transport Transport
	log       *logger.Logger
	dryRun    bool
}

// NewReconciler creates a Reconciler. With dryRun set, reads and comparisons
// run normally but create/update/delete calls are suppressed; the reported
// result reflects what would happen.
func NewReconciler(transport Transport, log *logger.Logger, dryRun bool) *Reconciler {
	return &Reconciler{
		locator:   NewLocator(transport, log),
		transport: transport,
		log:       log,
		dryRun:    dryRun,
	}
}

// Reconcile converges the remote object identified by def.Key to the
// declared intent. It is idempotent: an immediately repeated invocation with
// the same definition reports changed=false and performs no mutation.
func (r *Reconciler) Reconcile(ctx context.Context, def *Definition) (*Result, error) {
	if err := def.Key.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		ObjectName: def.Key.Name,
		Data:       def.Attrs,
		Diff:       NewDiff(),
	}

	log := r.log.WithFields(map[string]any{
		"object_name": def.Key.Name,
		"host":        def.Key.Host,
		"intent":      string(def.Intent),
		"dry_run":     r.dryRun,
	})

	switch def.Intent {
	case IntentAbsent:
		exists, err := r.locator.Exists(ctx, def.Key)
		if err != nil {
			return nil, err
		}
		if !exists {
			log.Debug("object already absent")
			return result, nil
		}

		if !r.dryRun {
			if err := r.remove(ctx, def.Key); err != nil {
				return nil, err
			}
		}
		log.Info("object deleted")
		result.Changed = true
		return result, nil

	case IntentPresent:
		// A single fetch doubles as the existence check, keeping the happy
		// path at one read instead of two.
		remote, err := r.locator.Fetch(ctx, def.Key)
		if err != nil {
			if !IsNotFound(err) {
				return nil, err
			}

			if !r.dryRun {
				if err := r.create(ctx, def); err != nil {
					return nil, err
				}
			}
			log.Info("object created")
			result.Changed = true
			return result, nil
		}

		diff, err := ComputeDiff(remote, def.Attrs)
		if err != nil {
			return nil, err
		}
		result.Diff = diff

		if diff.Empty() {
			log.Debug("object already converged")
			return result, nil
		}

		if !r.dryRun {
			if err := r.update(ctx, def); err != nil {
				return nil, err
			}
		}
		log.WithFields(map[string]any{"attributes": len(diff.Before)}).Info("object updated")
		result.Changed = true
		return result, nil

	default:
		return nil, dcerrors.NewValidationError("state", "state must be present or absent", nil)
	}
}

// create and update both POST the complete desired payload; the Director
// converges the object to the declared shape in one call.

func (r *Reconciler) create(ctx context.Context, def *Definition) error {
	resp, err := r.transport.Post(ctx, ServicePath, def.Key.Query(), def.Attrs)
	if err != nil {
		return err
	}
	return checkMutationStatus("create", resp)
}

func (r *Reconciler) update(ctx context.Context, def *Definition) error {
	resp, err := r.transport.Post(ctx, ServicePath, def.Key.Query(), def.Attrs)
	if err != nil {
		return err
	}
	return checkMutationStatus("update", resp)
}

func (r *Reconciler) remove(ctx context.Context, key ObjectKey) error {
	resp, err := r.transport.Delete(ctx, ServicePath, key.Query())
	if err != nil {
		return err
	}
	return checkMutationStatus("delete", resp)
}

func checkMutationStatus(op string, resp *director.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return dcerrors.NewUnexpectedStatusError(op, resp.StatusCode, string(resp.Body))
	}
}
