// Package audio plays the countdown alarm sound.
package audio
