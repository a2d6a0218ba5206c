package cart

// Line is one product's aggregated quantity and instructions in the cart.
// A cart never holds two lines for the same product id.
type Line struct {
	ProductID           string
	Name                string
	Image               string
	UnitPrice           float64
	DiscountedUnitPrice float64
	Quantity            int
	SpecialInstructions string
}

func (l Line) EffectiveUnitPrice() float64 {
	if l.DiscountedUnitPrice > 0 {
		return l.DiscountedUnitPrice
	}
	return l.UnitPrice
}

func (l Line) LineTotal() float64 {
	return l.EffectiveUnitPrice() * float64(l.Quantity)
}

type Cart struct {
	Lines []Line
}

// AddOrMerge merges the given line into an existing line for the same
// product (summing quantities) or appends it. Special instructions only
// overwrite the existing ones when a non-empty value is supplied.
func (b *Cart) AddOrMerge(line Line) {
	if line.Quantity <= 0 {
		return
	}

	for i := range b.Lines {
		if b.Lines[i].ProductID == line.ProductID {
			b.Lines[i].Quantity += line.Quantity
			if line.SpecialInstructions != "" {
				b.Lines[i].SpecialInstructions = line.SpecialInstructions
			}
			return
		}
	}

	b.Lines = append(b.Lines, line)
}

// SetQuantity replaces a line's quantity. Zero or less removes the line, so
// no non-positive quantity ever persists.
func (b *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		b.Remove(productID)
		return
	}

	for i := range b.Lines {
		if b.Lines[i].ProductID == productID {
			b.Lines[i].Quantity = quantity
			return
		}
	}
}

func (b *Cart) Remove(productID string) {
	for i := range b.Lines {
		if b.Lines[i].ProductID == productID {
			b.Lines = append(b.Lines[:i], b.Lines[i+1:]...)
			return
		}
	}
}

// Total is recomputed from the lines on every call, never cached.
func (b Cart) Total() float64 {
	total := 0.0
	for _, line := range b.Lines {
		total += line.LineTotal()
	}
	return total
}

// Count is the total number of items over all lines.
func (b Cart) Count() int {
	count := 0
	for _, line := range b.Lines {
		count += line.Quantity
	}
	return count
}

func (b Cart) IsEmpty() bool {
	return len(b.Lines) == 0
}
