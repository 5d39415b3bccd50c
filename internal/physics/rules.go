package physics

// lawRules is the Datalog program encoding the stacking laws. Object facts
// are appended per catalog entry as object(Id, Size, Form) and the program
// is evaluated to fixpoint once, at Laws construction.
//
// Derived relations:
//
//	can_support(Base, Top)  - Top may rest directly on Base (Base not a box)
//	can_contain(Box, X)     - X may rest inside Box
//
// The floor is not part of the program; it accepts everything and is
// handled in Go. Predicates carry no Decl statements; analysis infers
// them from use.
const lawRules = `
# Size ordering
size_le(/small, /small).
size_le(/small, /large).
size_le(/large, /large).

# Form classes.
# plain: forms that may rest on any flat top (balls roll off, boxes are
# special-cased below). flat_top: forms something can rest on (balls,
# pyramids and boxes have no usable top; box interiors are can_contain).
plain(/brick).
plain(/plank).
plain(/pyramid).
plain(/table).
flat_top(/brick).
flat_top(/plank).
flat_top(/table).
box_base(/table).
box_base(/plank).
snug(/ball).
snug(/brick).
pointy(/pyramid).
pointy(/plank).
pointy(/box).

# Ordinary stacking: a plain form rests on any flat top of at least its size.
can_support(Base, Top) :-
  object(Top, SizeTop, FormTop), plain(FormTop),
  object(Base, SizeBase, FormBase), flat_top(FormBase),
  size_le(SizeTop, SizeBase).

# Boxes ride on tables and planks of at least their size.
can_support(Base, Top) :-
  object(Top, SizeTop, /box),
  object(Base, SizeBase, FormBase), box_base(FormBase),
  size_le(SizeTop, SizeBase).

# A brick carries a box only when the brick is large.
can_support(Base, Top) :-
  object(Top, SizeTop, /box),
  object(Base, /large, /brick),
  size_le(SizeTop, /large).

# Balls and bricks sit snugly in any box of at least their size.
can_contain(Box, X) :-
  object(Box, SizeBox, /box),
  object(X, SizeX, FormX), snug(FormX),
  size_le(SizeX, SizeBox).

# Pyramids, planks and boxes only fit into a strictly larger box.
can_contain(Box, X) :-
  object(Box, /large, /box),
  object(X, /small, FormX), pointy(FormX).
`
