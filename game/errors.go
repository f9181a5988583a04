package game

import (
	"errors"
	"fmt"
)

// 引擎的三类拒绝。所有命令在写入任何状态之前抛出，
// 房间永远保持可用，错误文案由传输层直接转发给玩家。
var (
	ErrRule     = errors.New("规则违反")
	ErrNotFound = errors.New("不存在")
	ErrConflict = errors.New("状态冲突")
)

func ruleErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRule, fmt.Sprintf(format, args...))
}

func notFoundErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
