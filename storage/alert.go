package storage

import (
	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/storage/kv"
)

type alertRepository struct {
	store kv.Store
}

var _ alert.Repository = (*alertRepository)(nil) // interface compliance check

func NewAlertRepository(store kv.Store) alert.Repository {
	return &alertRepository{store: store}
}

func alertKeyOf(a alert.Alert) string { return a.ID }

func (repo *alertRepository) QueryAllAlerts() ([]alert.Alert, error) {
	return getList[alert.Alert](repo.store, kv.KeyAlerts)
}

func (repo *alertRepository) GetAlertByID(id string) (alert.Alert, error) {
	alerts, err := repo.QueryAllAlerts()
	if err != nil {
		return alert.Alert{}, err
	}
	for _, a := range alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return alert.Alert{}, alert.ErrNotFound
}

func (repo *alertRepository) SaveAlert(a alert.Alert) error {
	alerts, err := repo.QueryAllAlerts()
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyAlerts, upsertByKey(alerts, alertKeyOf, a))
}

func (repo *alertRepository) SaveAlerts(batch []alert.Alert) error {
	alerts, err := repo.QueryAllAlerts()
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyAlerts, upsertAllByKey(alerts, alertKeyOf, batch))
}

func (repo *alertRepository) UpdateAlert(id string, up alert.UpdateAlert) (alert.Alert, error) {
	alerts, err := repo.QueryAllAlerts()
	if err != nil {
		return alert.Alert{}, err
	}
	for i := range alerts {
		if alerts[i].ID != id {
			continue
		}
		a := &alerts[i]
		a.Acknowledged = up.Acknowledged
		a.AcknowledgedBy = up.AcknowledgedBy
		ackAt := up.AcknowledgedAt
		a.AcknowledgedAt = &ackAt

		if err := repo.store.Put(kv.KeyAlerts, alerts); err != nil {
			return alert.Alert{}, err
		}
		return *a, nil
	}
	return alert.Alert{}, alert.ErrNotFound
}
