package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/setting"
	"github.com/trezcool/hatari/storage/kv"
)

type settingRepository struct {
	store kv.Store
}

var _ setting.Repository = (*settingRepository)(nil) // interface compliance check

func NewSettingRepository(store kv.Store) setting.Repository {
	return &settingRepository{store: store}
}

func (repo *settingRepository) GetSettings() (setting.AppSettings, error) {
	var s setting.AppSettings
	if err := repo.store.Get(kv.KeySettings, &s); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return setting.Defaults(), nil
		}
		return setting.AppSettings{}, err
	}
	return s, nil
}

func (repo *settingRepository) SaveSettings(s setting.AppSettings) error {
	return repo.store.Put(kv.KeySettings, s)
}

func (repo *settingRepository) GetAPIKey() (string, error) {
	var key string
	if err := repo.store.Get(kv.KeyAPIKey, &key); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

func (repo *settingRepository) SaveAPIKey(key string) error {
	return repo.store.Put(kv.KeyAPIKey, key)
}
