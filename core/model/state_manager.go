// Package model provides the classifier contract, the trained-state tracker
// and the sparse weight vector shared by the linear models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// StateManager manages the trained state of a model in a thread-safe manner.
type StateManager struct {
	mu      sync.RWMutex
	trained bool

	nFeatures int
	nSamples  int
	epochs    int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been trained.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trained
}

// SetFitted marks the model as trained and records what it was trained on.
func (s *StateManager) SetFitted(nFeatures, nSamples, epochs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trained = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
	s.epochs = epochs
}

// Reset clears the trained state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trained = false
	s.nFeatures = 0
	s.nSamples = 0
	s.epochs = 0
}

// GetDimensions returns the number of features and samples seen during training.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// Epochs returns how many passes the last training run completed.
func (s *StateManager) Epochs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epochs
}

// RequireFitted returns a NotFittedError if the model has not been trained.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
