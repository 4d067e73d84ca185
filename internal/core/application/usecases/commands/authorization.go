package commands

import (
	"context"
	"errors"

	"bookstore/internal/core/domain/model/employee"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"
)

// requireApprover loads the acting employee and checks the approve capability. An
// unknown actor is unauthorized rather than not found.
func requireApprover(ctx context.Context, directory ports.EmployeeDirectory, actorID kernel.UUID) (*employee.Employee, error) {
	actor, err := directory.GetEmployee(ctx, actorID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewUnauthorizedError("employee "+actorID.String(), "approve")
	}
	if err != nil {
		return nil, err
	}

	if err = actor.RequireApprove(); err != nil {
		return nil, err
	}
	return actor, nil
}
