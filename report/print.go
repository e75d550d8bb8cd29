package report

import (
	"fmt"
	"go-ml.dev/pkg/sentiment/model"
	"io"
)

/*
Examples are sentences scored after training
*/
var Examples = []string{
	"The movie was great!",
	"The movie was okay.",
	"The movie was terrible...",
	`Great explanation, your team is awesome. "A drunk man stumbling aimlessly downhill,but taking quick steps" is the ` +
		`best analogy ever for Stochastic gradient descent`,
	" Grant, you're a diamond. ",
}

// PrintEvaluation prints test loss and accuracy
func PrintEvaluation(w io.Writer, e model.Evaluation) {
	fmt.Fprintln(w, "Loss: ", e.Loss)
	fmt.Fprintln(w, "Accuracy: ", e.Accuracy)
}

// PrintExportEvaluation prints the raw text evaluation of the export pipeline
func PrintExportEvaluation(w io.Writer, e model.Evaluation) {
	fmt.Fprintln(w, "loss, accuracy = ", e.Loss, e.Accuracy)
}

// PrintPredictions prints every text with its probability
func PrintPredictions(w io.Writer, texts []string, probs []float64) {
	for i, s := range texts {
		fmt.Fprintf(w, "%s – %f\n", s, probs[i])
	}
}
