// Package sheet implements a draggable, physically-animated bottom sheet as
// a headless state machine.
//
// The engine reconciles a continuous drag signal into three discrete
// presentation states (closed, collapsed, expanded). A drag gesture produces
// a stream of samples; each sample is bounded by a rubber-band transform,
// interpolated into a live height, and on release a pure classifier picks
// the state to settle into. The [Machine] owns the discrete state, drives
// entry/exit animations, and coordinates backdrop opacity and page scroll
// locking so every lock acquisition is paired with a release on every exit
// path.
//
// The package is renderer-agnostic: hosts feed it pointer-derived drag
// samples (see the gestures package), pump frames through the animation
// package, and read Height, BackdropOpacity and State each frame to draw
// whatever surface they like.
package sheet
