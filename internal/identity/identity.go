// Package identity assigns the numeric player id used by the backend.
package identity

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bpstudios/widescreen/internal/storage"
)

const (
	minID = 1000
	maxID = 100000

	// maxRolls bounds the collision loop so a misbehaving backend
	// cannot spin it forever.
	maxRolls = 25
)

// Checker asks the backend whether an id is already taken.
type Checker interface {
	UserIDExists(ctx context.Context, id string) (bool, error)
}

// Identity is the local player's id and display name.
type Identity struct {
	UserID   string
	UserName string
}

// Bootstrap returns the stored identity, creating one on first run: a
// random id in [1000, 100000] re-rolled while the backend reports a
// collision, with the default name "user<id>". The existence check is
// best-effort; if the backend is unreachable the candidate id is kept.
func Bootstrap(ctx context.Context, data *storage.Data, check Checker, logger *zap.Logger) (Identity, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if id, ok := data.UserID(); ok {
		return Identity{UserID: id, UserName: data.UserName()}, nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var id string
	for roll := 0; roll < maxRolls; roll++ {
		id = strconv.Itoa(rng.Intn(maxID-minID+1) + minID)
		taken, err := check.UserIDExists(ctx, id)
		if err != nil {
			logger.Warn("id collision check failed, keeping candidate",
				zap.String("id", id), zap.Error(err))
			break
		}
		if !taken {
			break
		}
		logger.Info("player id taken, regenerating", zap.String("id", id))
	}

	name := "user" + id
	if err := data.SetIdentity(id, name, time.Now()); err != nil {
		return Identity{}, err
	}
	logger.Info("created player identity", zap.String("id", id))
	return Identity{UserID: id, UserName: name}, nil
}
