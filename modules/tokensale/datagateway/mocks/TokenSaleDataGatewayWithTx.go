// Package mocks holds testify mocks of the datagateway interfaces in
// mockery's EXPECT() layout.
package mocks

import (
	context "context"

	datagateway "github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	entity "github.com/gaze-network/tokensale/modules/tokensale/internal/entity"

	mock "github.com/stretchr/testify/mock"
)

// TokenSaleDataGatewayWithTx is an autogenerated mock type for the TokenSaleDataGatewayWithTx type
type TokenSaleDataGatewayWithTx struct {
	mock.Mock
}

type TokenSaleDataGatewayWithTx_Expecter struct {
	mock *mock.Mock
}

func (_m *TokenSaleDataGatewayWithTx) EXPECT() *TokenSaleDataGatewayWithTx_Expecter {
	return &TokenSaleDataGatewayWithTx_Expecter{mock: &_m.Mock}
}

// BeginTokenSaleTx provides a mock function with given fields: ctx
func (_m *TokenSaleDataGatewayWithTx) BeginTokenSaleTx(ctx context.Context) (datagateway.TokenSaleDataGatewayWithTx, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for BeginTokenSaleTx")
	}

	var r0 datagateway.TokenSaleDataGatewayWithTx
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (datagateway.TokenSaleDataGatewayWithTx, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) datagateway.TokenSaleDataGatewayWithTx); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(datagateway.TokenSaleDataGatewayWithTx)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'BeginTokenSaleTx'
type TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call struct {
	*mock.Call
}

// BeginTokenSaleTx is a helper method to define mock.On call
//   - ctx context.Context
func (_e *TokenSaleDataGatewayWithTx_Expecter) BeginTokenSaleTx(ctx interface{}) *TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call {
	return &TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call{Call: _e.mock.On("BeginTokenSaleTx", ctx)}
}

func (_c *TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call) Run(run func(ctx context.Context)) *TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call) Return(_a0 datagateway.TokenSaleDataGatewayWithTx, _a1 error) *TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call) RunAndReturn(run func(context.Context) (datagateway.TokenSaleDataGatewayWithTx, error)) *TokenSaleDataGatewayWithTx_BeginTokenSaleTx_Call {
	_c.Call.Return(run)
	return _c
}

// Commit provides a mock function with given fields: ctx
func (_m *TokenSaleDataGatewayWithTx) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Commit")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TokenSaleDataGatewayWithTx_Commit_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Commit'
type TokenSaleDataGatewayWithTx_Commit_Call struct {
	*mock.Call
}

// Commit is a helper method to define mock.On call
//   - ctx context.Context
func (_e *TokenSaleDataGatewayWithTx_Expecter) Commit(ctx interface{}) *TokenSaleDataGatewayWithTx_Commit_Call {
	return &TokenSaleDataGatewayWithTx_Commit_Call{Call: _e.mock.On("Commit", ctx)}
}

func (_c *TokenSaleDataGatewayWithTx_Commit_Call) Run(run func(ctx context.Context)) *TokenSaleDataGatewayWithTx_Commit_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_Commit_Call) Return(_a0 error) *TokenSaleDataGatewayWithTx_Commit_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_Commit_Call) RunAndReturn(run func(context.Context) error) *TokenSaleDataGatewayWithTx_Commit_Call {
	_c.Call.Return(run)
	return _c
}

// CreateBlock provides a mock function with given fields: ctx, block
func (_m *TokenSaleDataGatewayWithTx) CreateBlock(ctx context.Context, block entity.Block) error {
	ret := _m.Called(ctx, block)

	if len(ret) == 0 {
		panic("no return value specified for CreateBlock")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Block) error); ok {
		r0 = rf(ctx, block)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TokenSaleDataGatewayWithTx_CreateBlock_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateBlock'
type TokenSaleDataGatewayWithTx_CreateBlock_Call struct {
	*mock.Call
}

// CreateBlock is a helper method to define mock.On call
//   - ctx context.Context
//   - block entity.Block
func (_e *TokenSaleDataGatewayWithTx_Expecter) CreateBlock(ctx interface{}, block interface{}) *TokenSaleDataGatewayWithTx_CreateBlock_Call {
	return &TokenSaleDataGatewayWithTx_CreateBlock_Call{Call: _e.mock.On("CreateBlock", ctx, block)}
}

func (_c *TokenSaleDataGatewayWithTx_CreateBlock_Call) Run(run func(ctx context.Context, block entity.Block)) *TokenSaleDataGatewayWithTx_CreateBlock_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Block))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_CreateBlock_Call) Return(_a0 error) *TokenSaleDataGatewayWithTx_CreateBlock_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_CreateBlock_Call) RunAndReturn(run func(context.Context, entity.Block) error) *TokenSaleDataGatewayWithTx_CreateBlock_Call {
	_c.Call.Return(run)
	return _c
}

// CreateCall provides a mock function with given fields: ctx, call
func (_m *TokenSaleDataGatewayWithTx) CreateCall(ctx context.Context, call entity.Call) error {
	ret := _m.Called(ctx, call)

	if len(ret) == 0 {
		panic("no return value specified for CreateCall")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Call) error); ok {
		r0 = rf(ctx, call)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TokenSaleDataGatewayWithTx_CreateCall_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateCall'
type TokenSaleDataGatewayWithTx_CreateCall_Call struct {
	*mock.Call
}

// CreateCall is a helper method to define mock.On call
//   - ctx context.Context
//   - call entity.Call
func (_e *TokenSaleDataGatewayWithTx_Expecter) CreateCall(ctx interface{}, call interface{}) *TokenSaleDataGatewayWithTx_CreateCall_Call {
	return &TokenSaleDataGatewayWithTx_CreateCall_Call{Call: _e.mock.On("CreateCall", ctx, call)}
}

func (_c *TokenSaleDataGatewayWithTx_CreateCall_Call) Run(run func(ctx context.Context, call entity.Call)) *TokenSaleDataGatewayWithTx_CreateCall_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Call))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_CreateCall_Call) Return(_a0 error) *TokenSaleDataGatewayWithTx_CreateCall_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_CreateCall_Call) RunAndReturn(run func(context.Context, entity.Call) error) *TokenSaleDataGatewayWithTx_CreateCall_Call {
	_c.Call.Return(run)
	return _c
}

// CreateEvents provides a mock function with given fields: ctx, events
func (_m *TokenSaleDataGatewayWithTx) CreateEvents(ctx context.Context, events []entity.Event) error {
	ret := _m.Called(ctx, events)

	if len(ret) == 0 {
		panic("no return value specified for CreateEvents")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []entity.Event) error); ok {
		r0 = rf(ctx, events)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TokenSaleDataGatewayWithTx_CreateEvents_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateEvents'
type TokenSaleDataGatewayWithTx_CreateEvents_Call struct {
	*mock.Call
}

// CreateEvents is a helper method to define mock.On call
//   - ctx context.Context
//   - events []entity.Event
func (_e *TokenSaleDataGatewayWithTx_Expecter) CreateEvents(ctx interface{}, events interface{}) *TokenSaleDataGatewayWithTx_CreateEvents_Call {
	return &TokenSaleDataGatewayWithTx_CreateEvents_Call{Call: _e.mock.On("CreateEvents", ctx, events)}
}

func (_c *TokenSaleDataGatewayWithTx_CreateEvents_Call) Run(run func(ctx context.Context, events []entity.Event)) *TokenSaleDataGatewayWithTx_CreateEvents_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]entity.Event))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_CreateEvents_Call) Return(_a0 error) *TokenSaleDataGatewayWithTx_CreateEvents_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_CreateEvents_Call) RunAndReturn(run func(context.Context, []entity.Event) error) *TokenSaleDataGatewayWithTx_CreateEvents_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteBlocksSinceHeight provides a mock function with given fields: ctx, height
func (_m *TokenSaleDataGatewayWithTx) DeleteBlocksSinceHeight(ctx context.Context, height int64) error {
	ret := _m.Called(ctx, height)

	if len(ret) == 0 {
		panic("no return value specified for DeleteBlocksSinceHeight")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, height)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteBlocksSinceHeight'
type TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call struct {
	*mock.Call
}

// DeleteBlocksSinceHeight is a helper method to define mock.On call
//   - ctx context.Context
//   - height int64
func (_e *TokenSaleDataGatewayWithTx_Expecter) DeleteBlocksSinceHeight(ctx interface{}, height interface{}) *TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call {
	return &TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call{Call: _e.mock.On("DeleteBlocksSinceHeight", ctx, height)}
}

func (_c *TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call) Run(run func(ctx context.Context, height int64)) *TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(int64))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call) Return(_a0 error) *TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call) RunAndReturn(run func(context.Context, int64) error) *TokenSaleDataGatewayWithTx_DeleteBlocksSinceHeight_Call {
	_c.Call.Return(run)
	return _c
}

// GetCallsByFrom provides a mock function with given fields: ctx, arg
func (_m *TokenSaleDataGatewayWithTx) GetCallsByFrom(ctx context.Context, arg datagateway.GetCallsByFromParams) ([]entity.Call, error) {
	ret := _m.Called(ctx, arg)

	if len(ret) == 0 {
		panic("no return value specified for GetCallsByFrom")
	}

	var r0 []entity.Call
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, datagateway.GetCallsByFromParams) ([]entity.Call, error)); ok {
		return rf(ctx, arg)
	}
	if rf, ok := ret.Get(0).(func(context.Context, datagateway.GetCallsByFromParams) []entity.Call); ok {
		r0 = rf(ctx, arg)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]entity.Call)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, datagateway.GetCallsByFromParams) error); ok {
		r1 = rf(ctx, arg)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TokenSaleDataGatewayWithTx_GetCallsByFrom_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetCallsByFrom'
type TokenSaleDataGatewayWithTx_GetCallsByFrom_Call struct {
	*mock.Call
}

// GetCallsByFrom is a helper method to define mock.On call
//   - ctx context.Context
//   - arg datagateway.GetCallsByFromParams
func (_e *TokenSaleDataGatewayWithTx_Expecter) GetCallsByFrom(ctx interface{}, arg interface{}) *TokenSaleDataGatewayWithTx_GetCallsByFrom_Call {
	return &TokenSaleDataGatewayWithTx_GetCallsByFrom_Call{Call: _e.mock.On("GetCallsByFrom", ctx, arg)}
}

func (_c *TokenSaleDataGatewayWithTx_GetCallsByFrom_Call) Run(run func(ctx context.Context, arg datagateway.GetCallsByFromParams)) *TokenSaleDataGatewayWithTx_GetCallsByFrom_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(datagateway.GetCallsByFromParams))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_GetCallsByFrom_Call) Return(_a0 []entity.Call, _a1 error) *TokenSaleDataGatewayWithTx_GetCallsByFrom_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_GetCallsByFrom_Call) RunAndReturn(run func(context.Context, datagateway.GetCallsByFromParams) ([]entity.Call, error)) *TokenSaleDataGatewayWithTx_GetCallsByFrom_Call {
	_c.Call.Return(run)
	return _c
}

// GetEvents provides a mock function with given fields: ctx, arg
func (_m *TokenSaleDataGatewayWithTx) GetEvents(ctx context.Context, arg datagateway.GetEventsParams) ([]entity.Event, error) {
	ret := _m.Called(ctx, arg)

	if len(ret) == 0 {
		panic("no return value specified for GetEvents")
	}

	var r0 []entity.Event
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, datagateway.GetEventsParams) ([]entity.Event, error)); ok {
		return rf(ctx, arg)
	}
	if rf, ok := ret.Get(0).(func(context.Context, datagateway.GetEventsParams) []entity.Event); ok {
		r0 = rf(ctx, arg)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]entity.Event)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, datagateway.GetEventsParams) error); ok {
		r1 = rf(ctx, arg)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TokenSaleDataGatewayWithTx_GetEvents_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetEvents'
type TokenSaleDataGatewayWithTx_GetEvents_Call struct {
	*mock.Call
}

// GetEvents is a helper method to define mock.On call
//   - ctx context.Context
//   - arg datagateway.GetEventsParams
func (_e *TokenSaleDataGatewayWithTx_Expecter) GetEvents(ctx interface{}, arg interface{}) *TokenSaleDataGatewayWithTx_GetEvents_Call {
	return &TokenSaleDataGatewayWithTx_GetEvents_Call{Call: _e.mock.On("GetEvents", ctx, arg)}
}

func (_c *TokenSaleDataGatewayWithTx_GetEvents_Call) Run(run func(ctx context.Context, arg datagateway.GetEventsParams)) *TokenSaleDataGatewayWithTx_GetEvents_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(datagateway.GetEventsParams))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_GetEvents_Call) Return(_a0 []entity.Event, _a1 error) *TokenSaleDataGatewayWithTx_GetEvents_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_GetEvents_Call) RunAndReturn(run func(context.Context, datagateway.GetEventsParams) ([]entity.Event, error)) *TokenSaleDataGatewayWithTx_GetEvents_Call {
	_c.Call.Return(run)
	return _c
}

// GetLatestBlock provides a mock function with given fields: ctx
func (_m *TokenSaleDataGatewayWithTx) GetLatestBlock(ctx context.Context) (entity.Block, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetLatestBlock")
	}

	var r0 entity.Block
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (entity.Block, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) entity.Block); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(entity.Block)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TokenSaleDataGatewayWithTx_GetLatestBlock_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetLatestBlock'
type TokenSaleDataGatewayWithTx_GetLatestBlock_Call struct {
	*mock.Call
}

// GetLatestBlock is a helper method to define mock.On call
//   - ctx context.Context
func (_e *TokenSaleDataGatewayWithTx_Expecter) GetLatestBlock(ctx interface{}) *TokenSaleDataGatewayWithTx_GetLatestBlock_Call {
	return &TokenSaleDataGatewayWithTx_GetLatestBlock_Call{Call: _e.mock.On("GetLatestBlock", ctx)}
}

func (_c *TokenSaleDataGatewayWithTx_GetLatestBlock_Call) Run(run func(ctx context.Context)) *TokenSaleDataGatewayWithTx_GetLatestBlock_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_GetLatestBlock_Call) Return(_a0 entity.Block, _a1 error) *TokenSaleDataGatewayWithTx_GetLatestBlock_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_GetLatestBlock_Call) RunAndReturn(run func(context.Context) (entity.Block, error)) *TokenSaleDataGatewayWithTx_GetLatestBlock_Call {
	_c.Call.Return(run)
	return _c
}

// Rollback provides a mock function with given fields: ctx
func (_m *TokenSaleDataGatewayWithTx) Rollback(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Rollback")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TokenSaleDataGatewayWithTx_Rollback_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Rollback'
type TokenSaleDataGatewayWithTx_Rollback_Call struct {
	*mock.Call
}

// Rollback is a helper method to define mock.On call
//   - ctx context.Context
func (_e *TokenSaleDataGatewayWithTx_Expecter) Rollback(ctx interface{}) *TokenSaleDataGatewayWithTx_Rollback_Call {
	return &TokenSaleDataGatewayWithTx_Rollback_Call{Call: _e.mock.On("Rollback", ctx)}
}

func (_c *TokenSaleDataGatewayWithTx_Rollback_Call) Run(run func(ctx context.Context)) *TokenSaleDataGatewayWithTx_Rollback_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_Rollback_Call) Return(_a0 error) *TokenSaleDataGatewayWithTx_Rollback_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *TokenSaleDataGatewayWithTx_Rollback_Call) RunAndReturn(run func(context.Context) error) *TokenSaleDataGatewayWithTx_Rollback_Call {
	_c.Call.Return(run)
	return _c
}

// NewTokenSaleDataGatewayWithTx creates a new instance of TokenSaleDataGatewayWithTx. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTokenSaleDataGatewayWithTx(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenSaleDataGatewayWithTx {
	mock := &TokenSaleDataGatewayWithTx{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
