package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"energy-ledger/internal/analysis"
	"energy-ledger/internal/ledger"
	"energy-ledger/internal/model"

	"go.uber.org/zap"
)

// InitLedger writes the seed assets and the initial grid state. Seed assets
// overwrite any stored asset with the same id; an existing grid state and
// transaction log are kept.
func (s *Service) InitLedger() error {
	var g model.GridState
	err := s.store.Update(func(tx *ledger.Tx) error {
		assets := ledger.NewAssets(tx)
		for _, a := range s.seed {
			if err := assets.Put(a); err != nil {
				return err
			}
		}
		var err error
		g, err = s.grid.Init(ledger.NewJournal(tx))
		return err
	})
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	s.metrics.SetGridPower(g)
	s.logger.Info("ledger initialized", zap.Int("assets", len(s.seed)))
	return nil
}

// CreateAsset validates and stores a new asset. orgValue and currValue may be
// numbers or numeric strings.
func (s *Service) CreateAsset(id, name, typ string, orgValue, currValue any) (model.Asset, error) {
	a, err := model.NewAsset(id, name, typ, orgValue, currValue)
	if err != nil {
		return model.Asset{}, err
	}
	err = s.store.Update(func(tx *ledger.Tx) error {
		return ledger.NewAssets(tx).Create(a)
	})
	if err != nil {
		return model.Asset{}, err
	}
	s.logger.Info("asset created", zap.String("id", a.ID), zap.String("type", string(a.Type)))
	return a, nil
}

func (s *Service) ReadAsset(id string) (model.Asset, error) {
	var a model.Asset
	err := s.store.View(func(tx *ledger.Tx) error {
		var err error
		a, err = ledger.NewAssets(tx).Get(id)
		return err
	})
	return a, err
}

// UpdateAsset replaces name, type and values of an existing asset. The owner
// is kept.
func (s *Service) UpdateAsset(id, name, typ string, orgValue, currValue any) (model.Asset, error) {
	a, err := model.NewAsset(id, name, typ, orgValue, currValue)
	if err != nil {
		return model.Asset{}, err
	}
	err = s.store.Update(func(tx *ledger.Tx) error {
		assets := ledger.NewAssets(tx)
		old, err := assets.Get(a.ID)
		if err != nil {
			return err
		}
		a.Owner = old.Owner
		return assets.Put(a)
	})
	if err != nil {
		return model.Asset{}, err
	}
	s.logger.Info("asset updated", zap.String("id", a.ID))
	return a, nil
}

func (s *Service) DeleteAsset(id string) error {
	err := s.store.Update(func(tx *ledger.Tx) error {
		return ledger.NewAssets(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("asset deleted", zap.String("id", id))
	return nil
}

func (s *Service) AssetExists(id string) (bool, error) {
	var ok bool
	err := s.store.View(func(tx *ledger.Tx) error {
		var err error
		ok, err = ledger.NewAssets(tx).Exists(id)
		return err
	})
	return ok, err
}

// TransferAsset sets a new owner and returns the previous one.
func (s *Service) TransferAsset(id, newOwner string) (string, error) {
	var oldOwner string
	err := s.store.Update(func(tx *ledger.Tx) error {
		assets := ledger.NewAssets(tx)
		a, err := assets.Get(id)
		if err != nil {
			return err
		}
		oldOwner = a.Owner
		a.Owner = newOwner
		return assets.Put(a)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("asset transferred", zap.String("id", id), zap.String("from", oldOwner), zap.String("to", newOwner))
	return oldOwner, nil
}

// GetAllAssets returns every asset in id order.
func (s *Service) GetAllAssets() ([]model.Asset, error) {
	var out []model.Asset
	err := s.store.View(func(tx *ledger.Tx) error {
		var err error
		out, err = ledger.NewAssets(tx).List()
		return err
	})
	return out, err
}

// GetAllAssetsJSON is GetAllAssets in the ledger's canonical encoding.
func (s *Service) GetAllAssetsJSON() (string, error) {
	all, err := s.GetAllAssets()
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ViewAllAssets lists producers with their supply and consumers with their
// demand.
func (s *Service) ViewAllAssets() (string, error) {
	all, err := s.GetAllAssets()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("List of Assets:\n")
	for _, a := range all {
		switch a.Type {
		case model.Producer:
			fmt.Fprintf(&b, "ID: %s, Name: %s, OrgSupply: %s, CurrSupply: %s\n", a.ID, a.Name, a.OrgValue, a.CurrValue)
		case model.Consumer:
			fmt.Fprintf(&b, "ID: %s, Name: %s, OrgDemand: %s, CurrDemand: %s\n", a.ID, a.Name, a.OrgValue, a.CurrValue)
		}
	}
	return b.String(), nil
}

func (s *Service) Summary() (analysis.Balance, error) {
	all, err := s.GetAllAssets()
	if err != nil {
		return analysis.Balance{}, err
	}
	return analysis.Summarize(all), nil
}
