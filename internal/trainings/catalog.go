package trainings

import (
	"context"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

// Catalog fetches the training list offered when assigning a training to
// an employee.
func Catalog(ctx context.Context, api apiclient.API) ([]viewmodel.Training, error) {
	var dtos []viewmodel.TrainingDTO
	if err := api.Get(ctx, "/Training", &dtos); err != nil {
		return []viewmodel.Training{}, err
	}
	return viewmodel.TrainingsFromDTO(dtos), nil
}
