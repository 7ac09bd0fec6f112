package feature

import (
	"fmt"
)

/*
Criterion represents a constraint on the values of a feature column.

Its SatisfiedBy method takes a cell value and returns a boolean indicating if
the value satisfies the criterion.
*/
type Criterion interface {
	SatisfiedBy(value interface{}) bool
}

/*
LessThan is the criterion used to partition training rows on a numerical
split: rows whose value is strictly below the threshold go to the "True"
branch.
*/
type LessThan float64

/*
AtMost is the criterion used to route query rows through a numerical split:
values at or below the threshold take the "True" branch. Note it differs from
LessThan for values equal to the threshold.
*/
type AtMost float64

/*
Equals is the criterion selecting the rows of a categorical level.
*/
type Equals string

// SatisfiedBy returns true if the value is a number strictly below the threshold.
func (lt LessThan) SatisfiedBy(value interface{}) bool {
	f, ok := Parse(value)
	return ok && f < float64(lt)
}

func (lt LessThan) String() string {
	return fmt.Sprintf("< %v", float64(lt))
}

// SatisfiedBy returns true if the value is a number at or below the threshold.
func (am AtMost) SatisfiedBy(value interface{}) bool {
	f, ok := Parse(value)
	return ok && f <= float64(am)
}

func (am AtMost) String() string {
	return fmt.Sprintf("<= %v", float64(am))
}

// SatisfiedBy returns true if the value stands for the criterion level.
func (e Equals) SatisfiedBy(value interface{}) bool {
	return Level(value) == string(e)
}

func (e Equals) String() string {
	return fmt.Sprintf("is %s", string(e))
}
