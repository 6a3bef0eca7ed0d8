// Package mocks provides testify mocks for the store, auth and service ports
// so handler and service tests share one set of doubles.
//
// Usage:
//
//	users := new(mocks.UserStore)
//	users.On("GetByEmail", mock.Anything, "a@b.test").Return(user, nil)
//	defer users.AssertExpectations(t)
package mocks
