package app

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/engine/scene"
)

// LogEvents attaches listeners that log clicks, grabs and releases of every
// object in s at info level.
func LogEvents(log *zap.Logger, s *scene.Scene) {
	log = log.Named("events").With(zap.String("scene", s.Name))
	s.Walk(func(o *scene.Object) bool {
		fields := []zap.Field{
			zap.Uint32("id", uint32(o.ID())),
			zap.String("name", o.Name()),
		}
		o.OnClick(func(side int, clicked bool) {
			if clicked {
				log.Info("click", append(fields, zap.Int("side", side))...)
			}
		})
		o.OnGrab(func(side int) {
			log.Info("grab", append(fields, zap.Int("side", side))...)
		})
		o.OnRelease(func(side int) {
			log.Info("release",
				append(fields,
					zap.Int("side", side),
					zap.Any("position", o.Pose().Position),
				)...)
		})
		return true
	})
}
