package core

import (
	"kbdcore-go/errcode"
	"kbdcore-go/services/hal/internal/halerr"
	"kbdcore-go/services/hal/internal/util"
	"kbdcore-go/types"
)

// As[T] asserts a payload to the concrete value type T.
// Pointers are not accepted. A nil payload is treated as the zero value of T.
func As[T any](v any) (T, errcode.Code) {
	var zero T
	if v == nil {
		return zero, ""
	}
	t, ok := v.(T)
	if !ok {
		return zero, errcode.InvalidPayload
	}
	return t, ""
}

// decodeConfig accepts a typed KeyboardConfig or its JSON form as published
// by the config service.
func decodeConfig(v any) (types.KeyboardConfig, error) {
	if v == nil {
		return types.KeyboardConfig{}, halerr.ErrNoConfig
	}
	cfg, code := As[types.KeyboardConfig](v)
	if code != "" {
		if err := util.DecodeJSON(v, &cfg); err != nil {
			return types.KeyboardConfig{}, &errcode.E{C: errcode.InvalidPayload, Op: "config", Err: err}
		}
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return types.KeyboardConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: err.Error(), Err: halerr.ErrInvalidConfig}
	}
	return cfg, nil
}

// decodeBoard accepts a BoardType or its name.
func decodeBoard(v any) (types.BoardType, errcode.Code) {
	switch b := v.(type) {
	case types.BoardType:
		return b, ""
	case string:
		bt, err := types.ParseBoardType(b)
		if err != nil {
			return 0, errcode.InvalidParams
		}
		return bt, ""
	case nil:
		return types.BoardAuto, ""
	}
	return 0, errcode.InvalidPayload
}
