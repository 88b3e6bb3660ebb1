package project

import "go.trai.ch/zerr"

var (
	// ErrTransitivityAlreadySet is returned by Selector.WithTransitivity when
	// the selector's transitivity field is already set.
	ErrTransitivityAlreadySet = zerr.New("selector transitivity already set")

	// ErrTypeAlreadySet is returned by Selector.WithType when the selector's
	// project-type field is already set.
	ErrTypeAlreadySet = zerr.New("selector project type already set")

	// ErrNameAlreadySet is returned by Selector.WithName when the selector's
	// configuration-name field is already set.
	ErrNameAlreadySet = zerr.New("selector configuration name already set")

	// ErrTargetOSAlreadySet is returned by Selector.WithTargetOS when the
	// selector's target-OS field is already set.
	ErrTargetOSAlreadySet = zerr.New("selector target OS already set")
)
