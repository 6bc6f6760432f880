package components

const (
	CardHeight        = 4 // CardHeight is the fixed height of an item card including its border
	columnContentSize = 34
	cardContentWidth  = 30 // card text width inside border and padding
	columnOverhead    = 5  // border(2) + header(1) + top indicator(1) + bottom padding(1)
)
