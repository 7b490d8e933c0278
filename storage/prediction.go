package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/storage/kv"
)

type predictionRepository struct {
	store kv.Store
}

var _ prediction.Repository = (*predictionRepository)(nil) // interface compliance check

func NewPredictionRepository(store kv.Store) prediction.Repository {
	return &predictionRepository{store: store}
}

// predictions are keyed by student: the latest prediction per student wins
func predictionKeyOf(p prediction.RiskPrediction) string { return p.StudentID }

func (repo *predictionRepository) QueryAllPredictions() ([]prediction.RiskPrediction, error) {
	return getList[prediction.RiskPrediction](repo.store, kv.KeyPredictions)
}

func (repo *predictionRepository) GetPredictionByStudentID(studentID string) (prediction.RiskPrediction, error) {
	predictions, err := repo.QueryAllPredictions()
	if err != nil {
		return prediction.RiskPrediction{}, err
	}
	for _, p := range predictions {
		if p.StudentID == studentID {
			return p, nil
		}
	}
	return prediction.RiskPrediction{}, prediction.ErrNotFound
}

func (repo *predictionRepository) SavePrediction(p prediction.RiskPrediction) error {
	predictions, err := repo.QueryAllPredictions()
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyPredictions, upsertByKey(predictions, predictionKeyOf, p))
}

func (repo *predictionRepository) SavePredictions(batch []prediction.RiskPrediction) error {
	predictions, err := repo.QueryAllPredictions()
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyPredictions, upsertAllByKey(predictions, predictionKeyOf, batch))
}

func (repo *predictionRepository) GetModelMetadata() (prediction.ModelMetadata, error) {
	var meta prediction.ModelMetadata
	if err := repo.store.Get(kv.KeyModelMetadata, &meta); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return prediction.ModelMetadata{}, prediction.ErrNoMetadata
		}
		return prediction.ModelMetadata{}, err
	}
	return meta, nil
}

func (repo *predictionRepository) SaveModelMetadata(m prediction.ModelMetadata) error {
	return repo.store.Put(kv.KeyModelMetadata, m)
}
