package qsearch

import "errors"

// ErrInvalidArgument is returned by NewIndex when a configuration value
// is invalid (a minKeywordLength below 1, a nil callback) or a supplied
// callback fails its construction-time probe. No other function or
// method returns it. Use errors.Is to check for it; wrapped instances
// carry the underlying cause in their message.
var ErrInvalidArgument = errors.New("qsearch: invalid argument")
