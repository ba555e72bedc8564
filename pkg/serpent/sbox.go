package serpent

// The eight S-boxes and their inverses are realized with the Gladman/
// Simpson bitwise formulations. Each circuit reads four registers and
// returns the substituted four; no memory lookup depends on the data.

// Sb0 applies S-box 0.
func Sb0[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Xor(r3)
	t1 := r2.Xor(t0)
	t2 := r1.Xor(t1)
	w3 := r0.And(r3).Xor(t2)
	t3 := r0.Xor(r1.And(t0))
	w2 := t2.Xor(r2.Or(t3))
	t4 := w3.And(t1.Xor(t3))
	w1 := t1.Not().Xor(t4)
	w0 := t4.Xor(t3.Not())
	return w0, w1, w2, w3
}

// Ib0 applies the inverse of S-box 0.
func Ib0[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Not()
	t1 := r0.Xor(r1)
	t2 := r3.Xor(t0.Or(t1))
	t3 := r2.Xor(t2)
	w2 := t1.Xor(t3)
	t4 := t0.Xor(r3.And(t1))
	w1 := t2.Xor(w2.And(t4))
	w3 := r0.And(t2).Xor(t3.Or(w1))
	w0 := w3.Xor(t3.Xor(t4))
	return w0, w1, w2, w3
}

// Sb1 applies S-box 1.
func Sb1[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r1.Xor(r0.Not())
	t1 := r2.Xor(r0.Or(t0))
	w2 := r3.Xor(t1)
	t2 := r1.Xor(r3.Or(t0))
	t3 := t0.Xor(w2)
	w3 := t3.Xor(t1.And(t2))
	t4 := t1.Xor(t2)
	w1 := w3.Xor(t4)
	w0 := t1.Xor(t3.And(t4))
	return w0, w1, w2, w3
}

// Ib1 applies the inverse of S-box 1.
func Ib1[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r1.Xor(r3)
	t1 := r0.Xor(r1.And(t0))
	t2 := t0.Xor(t1)
	w3 := r2.Xor(t2)
	t3 := r1.Xor(t0.And(t1))
	t4 := w3.Or(t3)
	w1 := t1.Xor(t4)
	t5 := w1.Not()
	t6 := w3.Xor(t3)
	w0 := t5.Xor(t6)
	w2 := t2.Xor(t5.Or(t6))
	return w0, w1, w2, w3
}

// Sb2 applies S-box 2.
func Sb2[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Not()
	t1 := r1.Xor(r3)
	t2 := r2.And(t0)
	w0 := t1.Xor(t2)
	t3 := r2.Xor(t0)
	t4 := r2.Xor(w0)
	t5 := r1.And(t4)
	w3 := t3.Xor(t5)
	w2 := r0.Xor(r3.Or(t5).And(w0.Or(t3)))
	w1 := t1.Xor(w3).Xor(w2.Xor(r3.Or(t0)))
	return w0, w1, w2, w3
}

// Ib2 applies the inverse of S-box 2.
func Ib2[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r1.Xor(r3)
	t1 := t0.Not()
	t2 := r0.Xor(r2)
	t3 := r2.Xor(t0)
	t4 := r1.And(t3)
	w0 := t2.Xor(t4)
	t5 := r0.Or(t1)
	t6 := r3.Xor(t5)
	t7 := t2.Or(t6)
	w3 := t0.Xor(t7)
	t8 := t3.Not()
	t9 := w0.Or(w3)
	w1 := t8.Xor(t9)
	w2 := r3.And(t8).Xor(t2.Xor(t9))
	return w0, w1, w2, w3
}

// Sb3 applies S-box 3.
func Sb3[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Xor(r1)
	t1 := r0.And(r2)
	t2 := r0.Or(r3)
	t3 := r2.Xor(r3)
	t4 := t0.And(t2)
	t5 := t1.Or(t4)
	w2 := t3.Xor(t5)
	t6 := r1.Xor(t2)
	t7 := t5.Xor(t6)
	t8 := t3.And(t7)
	w0 := t0.Xor(t8)
	t9 := w2.And(w0)
	w1 := t7.Xor(t9)
	w3 := r1.Or(r3).Xor(t3.Xor(t9))
	return w0, w1, w2, w3
}

// Ib3 applies the inverse of S-box 3.
func Ib3[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Or(r1)
	t1 := r1.Xor(r2)
	t2 := r1.And(t1)
	t3 := r0.Xor(t2)
	t4 := r2.Xor(t3)
	t5 := r3.Or(t3)
	w0 := t1.Xor(t5)
	t6 := t1.Or(t5)
	t7 := r3.Xor(t6)
	w2 := t4.Xor(t7)
	t8 := t0.Xor(t7)
	t9 := w0.And(t8)
	w3 := t3.Xor(t9)
	w1 := w3.Xor(w0.Xor(t8))
	return w0, w1, w2, w3
}

// Sb4 applies S-box 4.
func Sb4[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Xor(r3)
	t1 := r3.And(t0)
	t2 := r2.Xor(t1)
	t3 := r1.Or(t2)
	w3 := t0.Xor(t3)
	t4 := r1.Not()
	t5 := t0.Or(t4)
	w0 := t2.Xor(t5)
	t6 := r0.And(w0)
	t7 := t0.Xor(t4)
	t8 := t3.And(t7)
	w2 := t6.Xor(t8)
	w1 := r0.Xor(t2).Xor(t7.And(w2))
	return w0, w1, w2, w3
}

// Ib4 applies the inverse of S-box 4.
func Ib4[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r2.Or(r3)
	t1 := r0.And(t0)
	t2 := r1.Xor(t1)
	t3 := r0.And(t2)
	t4 := r2.Xor(t3)
	w1 := r3.Xor(t4)
	t5 := r0.Not()
	t6 := t4.And(w1)
	w3 := t2.Xor(t6)
	t7 := w1.Or(t5)
	t8 := r3.Xor(t7)
	w0 := w3.Xor(t8)
	w2 := t2.And(t8).Xor(w1.Xor(t5))
	return w0, w1, w2, w3
}

// Sb5 applies S-box 5.
func Sb5[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Not()
	t1 := r0.Xor(r1)
	t2 := r0.Xor(r3)
	t3 := r2.Xor(t0)
	t4 := t1.Or(t2)
	w0 := t3.Xor(t4)
	t5 := r3.And(w0)
	t6 := t1.Xor(w0)
	w1 := t5.Xor(t6)
	t7 := t0.Or(w0)
	t8 := t1.Or(t5)
	t9 := t2.Xor(t7)
	w2 := t8.Xor(t9)
	w3 := r1.Xor(t5).Xor(w1.And(t9))
	return w0, w1, w2, w3
}

// Ib5 applies the inverse of S-box 5.
func Ib5[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r2.Not()
	t1 := r1.And(t0)
	t2 := r3.Xor(t1)
	t3 := r0.And(t2)
	t4 := r1.Xor(t0)
	w3 := t3.Xor(t4)
	t5 := r1.Or(w3)
	t6 := r0.And(t5)
	w1 := t2.Xor(t6)
	t7 := r0.Or(r3)
	t8 := t0.Xor(t5)
	w0 := t7.Xor(t8)
	w2 := r1.And(t7).Xor(t3.Or(r0.Xor(r2)))
	return w0, w1, w2, w3
}

// Sb6 applies S-box 6.
func Sb6[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Not()
	t1 := r0.Xor(r3)
	t2 := r1.Xor(t1)
	t3 := t0.Or(t1)
	t4 := r2.Xor(t3)
	w1 := r1.Xor(t4)
	t5 := t1.Or(w1)
	t6 := r3.Xor(t5)
	t7 := t4.And(t6)
	w2 := t2.Xor(t7)
	t8 := t4.Xor(t6)
	w0 := w2.Xor(t8)
	w3 := t4.Not().Xor(t2.And(t8))
	return w0, w1, w2, w3
}

// Ib6 applies the inverse of S-box 6.
func Ib6[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.Not()
	t1 := r0.Xor(r1)
	t2 := r2.Xor(t1)
	t3 := r2.Or(t0)
	t4 := r3.Xor(t3)
	w1 := t2.Xor(t4)
	t5 := t2.And(t4)
	t6 := t1.Xor(t5)
	t7 := r1.Or(t6)
	w3 := t4.Xor(t7)
	t8 := r1.Or(w3)
	w0 := t6.Xor(t8)
	w2 := r3.And(t0).Xor(t2.Xor(t8))
	return w0, w1, w2, w3
}

// Sb7 applies S-box 7.
func Sb7[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r1.Xor(r2)
	t1 := r2.And(t0)
	t2 := r3.Xor(t1)
	t3 := r0.Xor(t2)
	t4 := r3.Or(t0)
	t5 := t3.And(t4)
	w1 := r1.Xor(t5)
	t6 := t2.Or(w1)
	t7 := r0.And(t3)
	w3 := t0.Xor(t7)
	t8 := t3.Xor(t6)
	t9 := w3.And(t8)
	w2 := t2.Xor(t9)
	w0 := t8.Not().Xor(w3.And(w2))
	return w0, w1, w2, w3
}

// Ib7 applies the inverse of S-box 7.
func Ib7[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r2.Or(r0.And(r1))
	t1 := r3.And(r0.Or(r1))
	w3 := t0.Xor(t1)
	t2 := r3.Not()
	t3 := r1.Xor(t1)
	t4 := t3.Or(w3.Xor(t2))
	w1 := r0.Xor(t4)
	w0 := r2.Xor(t3).Xor(r3.Or(w1))
	w2 := t0.Xor(w1).Xor(w0.Xor(r0.And(w3)))
	return w0, w1, w2, w3
}

// LT applies the Serpent linear transform.
func LT[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t0 := r0.RotL(13)
	t2 := r2.RotL(3)
	t1 := r1.Xor(t0).Xor(t2)
	t3 := r3.Xor(t2).Xor(t0.ShL(3))
	w1 := t1.RotL(1)
	w3 := t3.RotL(7)
	t0 = t0.Xor(w1).Xor(w3)
	t2 = t2.Xor(w3).Xor(w1.ShL(7))
	w0 := t0.RotL(5)
	w2 := t2.RotL(22)
	return w0, w1, w2, w3
}

// ILT applies the inverse linear transform.
func ILT[T Word[T]](r0, r1, r2, r3 T) (T, T, T, T) {
	t2 := r2.RotL(10)
	t0 := r0.RotL(27)
	t2 = t2.Xor(r3).Xor(r1.ShL(7))
	t0 = t0.Xor(r1).Xor(r3)
	t3 := r3.RotL(25)
	t1 := r1.RotL(31)
	w3 := t3.Xor(t2).Xor(t0.ShL(3))
	w1 := t1.Xor(t0).Xor(t2)
	w2 := t2.RotL(29)
	w0 := t0.RotL(19)
	return w0, w1, w2, w3
}
