package core

import (
	"kbdcore-go/bus"
	"kbdcore-go/services/hal/internal/consts"
)

func T(tokens ...any) bus.Topic { return bus.T(tokens...) }

func topicConfigKeyboard() bus.Topic { return T(consts.TokConfig, consts.TokKeyboard) }

func topicHALState() bus.Topic { return T(consts.TokHAL, consts.TokState) }

// hal/keyboard/...
func kbdBase() bus.Topic { return T(consts.TokHAL, consts.TokKeyboard) }

func TopicKeyboardState() bus.Topic { return kbdBase().Append(consts.TokState) }

// hal/keyboard/control/<verb>
func TopicControl(verb string) bus.Topic { return kbdBase().Append(consts.TokControl, verb) }

// hal/keyboard/control/+
func ctrlWildcard() bus.Topic { return kbdBase().Append(consts.TokControl, "+") }
